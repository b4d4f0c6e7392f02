// Package test provides small assert helpers, inspired from
// https://github.com/benbjohnson/testing
package test

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"testing"
)

// Assert fails the test if the condition is false.
func Assert(t testing.TB, condition bool, msg string, v ...interface{}) {
	if !condition {
		t.Fatalf("["+callerString(1)+"] "+msg, v...)
	}
}

// OK fails the test if err is not nil.
func OK(t testing.TB, err error) {
	if err != nil {
		t.Fatalf("unexpected error [%s]: %s", callerString(1), err.Error())
	}
}

// Equals fails the test if exp is not equal to act.
func Equals(t testing.TB, exp, act interface{}) {
	if !reflect.DeepEqual(exp, act) {
		t.Fatalf("["+callerString(1)+"]\nexp: %T\n\t%#v\ngot: %T\n\t%#v", exp, exp, act, act)
	}
}

// Contains fails the test if substr is not contained in s.
func Contains(t testing.TB, s, substr string) {
	if !strings.Contains(s, substr) {
		t.Fatalf("[%s]\nexpected %q to contain %q", callerString(1), s, substr)
	}
}

// callerString returns the file:line from the call stack at the given
// position (0 = current file:line, 1 = caller of the current function, etc).
func callerString(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	short := file
	depth := 0
	for i := len(file) - 1; i > 0; i-- {
		if file[i] == '/' {
			short = file[i+1:]
			depth++
			if depth == 2 {
				break
			}
		}
	}
	return fmt.Sprintf("%s:%d", short, line)
}
