package errors

import "fmt"

var (
	ErrWorkerPanic   = fmt.Errorf("worker panic")
	ErrNameTaken     = fmt.Errorf("username already taken")
	ErrGroupExists   = fmt.Errorf("group already exists")
	ErrGroupNotFound = fmt.Errorf("group not found")
	ErrNotInGroup    = fmt.Errorf("not a member of any group")
	ErrEmptyWords    = fmt.Errorf("no words have been found")
	ErrEmptyAnswer   = fmt.Errorf("assistant returned an empty answer")
)
