package modules

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/safing/portrng/log"
)

// ModuleError wraps a panic, error or message into an error that can be reported.
type ModuleError struct {
	Message string

	ModuleName string
	TaskName   string
	TaskType   string // one of "worker", "module-control" or custom
	Severity   string // one of "info", "error", "panic" or custom

	PanicValue interface{}
	StackTrace string
}

// NewPanicError creates a new, reportable, panic error message (including a stack trace).
func (m *Module) NewPanicError(taskName, taskType string, panicValue interface{}) *ModuleError {
	me := &ModuleError{
		ModuleName: m.Name,
		TaskName:   taskName,
		TaskType:   taskType,
		Severity:   "panic",
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
	}
	me.Message = fmt.Sprintf("panic in %s %s of module %s: %v", taskType, taskName, m.Name, panicValue)
	return me
}

// Error returns the string representation of the error.
func (me *ModuleError) Error() string {
	return me.Message
}

// Report logs the error, including the stack trace of panics.
func (me *ModuleError) Report() {
	if me.Severity == "panic" {
		log.Errorf("%s\n%s", me.Message, me.StackTrace)
	} else {
		log.Warningf("%s: %s", me.ModuleName, me.Message)
	}
}

// IsPanic returns whether the given error is a wrapped panic by the modules package and additionally returns it, if true.
func IsPanic(err error) (bool, *ModuleError) {
	var me *ModuleError
	if errors.As(err, &me) && me.Severity == "panic" {
		return true, me
	}
	return false, nil
}
