package syscalls

import (
	"fmt"

	"github.com/starknet-syscalls/syscallhost/execution"
	"github.com/starknet-syscalls/syscallhost/felt"
	"github.com/starknet-syscalls/syscallhost/vmmem"
)

// callRequest is the common (class_hash_or_contract_address, selector,
// calldata_start, calldata_end) shape call_contract and library_call
// both read (spec §4.8).
type callRequest struct {
	first        felt.Felt
	selector     felt.Felt
	calldata     []felt.Felt
	afterArgsPtr vmmem.Relocatable
}

func (h *Handler) readCallRequest(argsPtr vmmem.Relocatable) (callRequest, error) {
	first, err := h.Memory.ReadFelt(argsPtr)
	if err != nil {
		return callRequest{}, err
	}
	selector, err := h.Memory.ReadFelt(argsPtr.Add(1))
	if err != nil {
		return callRequest{}, err
	}
	calldataStart, err := h.Memory.ReadRelocatable(argsPtr.Add(2))
	if err != nil {
		return callRequest{}, err
	}
	calldataEnd, err := h.Memory.ReadRelocatable(argsPtr.Add(3))
	if err != nil {
		return callRequest{}, err
	}
	calldata, err := h.Memory.ReadFeltRange(calldataStart, calldataEnd)
	if err != nil {
		return callRequest{}, err
	}
	return callRequest{first: first, selector: selector, calldata: calldata, afterArgsPtr: argsPtr.Add(4)}, nil
}

// callResultToBody turns an ExecuteEntryPoint result into this syscall's
// response body: the callee's retdata is written to a fresh segment
// either way, and the body is tagged Failure when the callee failed,
// Success otherwise.
func (h *Handler) callResultToBody(result execution.Result, err error) (ResponseBody, error) {
	if err != nil {
		return ResponseBody{}, err
	}
	start, allocErr := h.AllocateSegment(result.Retdata)
	if allocErr != nil {
		return ResponseBody{}, allocErr
	}
	end := start.Add(uint64(len(result.Retdata)))
	if !result.IsSuccess {
		return FailureBody(start, end), nil
	}
	return SuccessBody(start, end), nil
}

// syscallCallContract invokes another contract's own code against its
// own storage (spec §4.8, call_contract_helper with CallType Call).
func (h *Handler) syscallCallContract(argsPtr vmmem.Relocatable) (ResponseBody, vmmem.Relocatable, error) {
	req, err := h.readCallRequest(argsPtr)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}

	callee := felt.AddressFromFelt(req.first)
	result, err := h.ExecuteEntryPoint(EntryPointInput{
		ContractAddress: callee,
		CallerAddress:   h.ContractAddress,
		Selector:        req.selector,
		EntryPointType:  execution.EntryPointTypeExternal,
		CallType:        execution.CallTypeCall,
		Calldata:        req.calldata,
	})
	body, err := h.callResultToBody(result, err)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	return body, req.afterArgsPtr, nil
}

// syscallLibraryCall invokes another class's code against the caller's
// own storage (spec §4.8, call_contract_helper with CallType Delegate).
func (h *Handler) syscallLibraryCall(argsPtr vmmem.Relocatable) (ResponseBody, vmmem.Relocatable, error) {
	req, err := h.readCallRequest(argsPtr)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}

	classHash := felt.ClassHashFromFelt(req.first)
	result, err := h.ExecuteEntryPoint(EntryPointInput{
		ContractAddress: h.ContractAddress,
		CallerAddress:   h.CallerAddress,
		ClassHash:       &classHash,
		Selector:        req.selector,
		EntryPointType:  execution.EntryPointTypeExternal,
		CallType:        execution.CallTypeDelegate,
		Calldata:        req.calldata,
	})
	body, err := h.callResultToBody(result, err)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	return body, req.afterArgsPtr, nil
}

// constructorSelector is the reserved selector every class's constructor
// entry point is registered under.
var constructorSelector = felt.FromASCII("constructor")

// syscallDeploy reads (class_hash, contract_address_salt,
// constructor_calldata_start, constructor_calldata_end,
// deploy_from_zero), derives the new contract's address, installs the
// class, and runs its constructor if it declares one (spec §4.8 deploy,
// SUPPLEMENTED FEATURES: constructor_entry_points_empty /
// handle_empty_constructor from the original deploy transaction).
func (h *Handler) syscallDeploy(argsPtr vmmem.Relocatable) (ResponseBody, vmmem.Relocatable, error) {
	classHashFelt, err := h.Memory.ReadFelt(argsPtr)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	salt, err := h.Memory.ReadFelt(argsPtr.Add(1))
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	calldataStart, err := h.Memory.ReadRelocatable(argsPtr.Add(2))
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	calldataEnd, err := h.Memory.ReadRelocatable(argsPtr.Add(3))
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	deployFromZeroFelt, err := h.Memory.ReadFelt(argsPtr.Add(4))
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	calldata, err := h.Memory.ReadFeltRange(calldataStart, calldataEnd)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}

	deployFromZero, err := deployFromZeroFelt.ToUint64()
	if err != nil || deployFromZero > 1 {
		return ResponseBody{}, vmmem.Relocatable{}, fmt.Errorf("%w: got %s", ErrInvalidDeployFromZero, deployFromZeroFelt.String())
	}

	deployer := h.ContractAddress
	if deployFromZero == 1 {
		deployer = felt.ZeroAddress
	}

	newAddress := deriveContractAddress(deployer, salt, classHashFelt, calldata)
	classHash := felt.ClassHashFromFelt(classHashFelt)

	if err := h.host.State.DeployContract(newAddress, classHash); err != nil {
		body, ferr := h.failureFromErrorMsg("CONTRACT_ADDRESS_UNAVAILABLE")
		return body, argsPtr.Add(5), ferr
	}

	class, err := h.host.State.GetContractClass(classHash)
	if err != nil {
		body, ferr := h.failureFromErrorMsg("CLASS_HASH_NOT_FOUND")
		return body, argsPtr.Add(5), ferr
	}

	var info *execution.CallInfo
	if !class.HasConstructor() {
		if len(calldata) != 0 {
			return ResponseBody{}, vmmem.Relocatable{}, fmt.Errorf("%w: deploy: constructor calldata supplied for class with no constructor", ErrMalformedRequest)
		}
		info = execution.EmptyConstructorCall(newAddress, h.ContractAddress, &classHash)
		h.InternalCalls = append(h.InternalCalls, info)
	} else {
		result, execErr := h.ExecuteEntryPoint(EntryPointInput{
			ContractAddress: newAddress,
			CallerAddress:   h.ContractAddress,
			ClassHash:       &classHash,
			Selector:        constructorSelector,
			EntryPointType:  execution.EntryPointTypeConstructor,
			CallType:        execution.CallTypeCall,
			Calldata:        calldata,
		})
		if execErr != nil {
			return ResponseBody{}, vmmem.Relocatable{}, execErr
		}
		if !result.IsSuccess {
			start, allocErr := h.AllocateSegment(result.Retdata)
			if allocErr != nil {
				return ResponseBody{}, vmmem.Relocatable{}, allocErr
			}
			return FailureBody(start, start.Add(uint64(len(result.Retdata)))), argsPtr.Add(5), nil
		}
	}

	start, err := h.AllocateSegment([]felt.Felt{newAddress.Felt})
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	return SuccessBody(start, start.Add(1)), argsPtr.Add(5), nil
}

// deriveContractAddress computes the deployed contract's address
// as the plain felt sum of the deployer, salt, class hash and every
// calldata element. The result is deterministic but not collision-free:
// any two inputs with the same sum derive the same address. Starknet's
// Pedersen-based address derivation is not implemented.
func deriveContractAddress(deployer felt.Address, salt, classHash felt.Felt, calldata []felt.Felt) felt.Address {
	acc := deployer.Felt.Add(salt).Add(classHash)
	for _, c := range calldata {
		acc = acc.Add(c)
	}
	return felt.AddressFromFelt(acc)
}
