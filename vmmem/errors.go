package vmmem

import "errors"

// ErrNoSuchValue signals a read of a VM memory cell that was never written.
var ErrNoSuchValue = errors.New("vmmem: no value at address")

// ErrInconsistentWrite signals a write that would silently overwrite an
// already-written cell with a different value, which real Cairo memory forbids.
var ErrInconsistentWrite = errors.New("vmmem: inconsistent memory write")

// ErrNoSuchSegment signals an operation against a segment index that was never allocated.
var ErrNoSuchSegment = errors.New("vmmem: no such segment")

// ErrNotRelocatable signals that a cell expected to hold a relocatable pointer holds a felt instead.
var ErrNotRelocatable = errors.New("vmmem: value is not a relocatable")

// ErrNotFelt signals that a cell expected to hold a felt holds a relocatable pointer instead.
var ErrNotFelt = errors.New("vmmem: value is not a felt")
