// Package mock provides a small expectation-recording core for hand-written
// test doubles. A mock embeds *Expector, the test registers expectations with
// Expect, and each mocked method calls Record with its arguments to both
// verify the call and fetch the canned return values.
package mock

import (
	"path"
	"reflect"
	"runtime"
	"strings"
	"testing"
)

// Expectation describes a single expected call: the method, the expected
// arguments, and the values the mock should return.
type Expectation struct {
	Func    interface{}
	Params  []interface{}
	Returns []interface{}
}

// NewExpectation returns an expectation for a call of f with the provided
// arguments.
func NewExpectation(f interface{}, params ...interface{}) *Expectation {
	return &Expectation{Func: f, Params: params}
}

// WithReturns attaches the values the mocked method should return.
func (e *Expectation) WithReturns(rets ...interface{}) *Expectation {
	e.Returns = rets
	return e
}

// Expector records expectations for a mock and verifies calls against them
// in order. A call with no matching expectation returns no canned values,
// leaving the mocked method to return its zero values.
type Expector struct {
	T testing.TB

	expectations []*Expectation
	recorded     int
}

// Expect appends an expectation.
func (e *Expector) Expect(exp *Expectation) {
	e.expectations = append(e.expectations, exp)
}

// Record verifies the current call against the next expectation and returns
// its canned return values. The calling method is identified from the stack.
func (e *Expector) Record(params ...interface{}) []interface{} {
	if e.recorded >= len(e.expectations) {
		return nil
	}
	exp := e.expectations[e.recorded]
	e.recorded++

	caller := callerName(1)
	expected := funcName(exp.Func)
	if expected != "" && caller != "" && expected != caller {
		e.T.Fatalf("mock: expected a call to %s but got %s", expected, caller)
	}
	if !reflect.DeepEqual(exp.Params, params) {
		e.T.Fatalf("mock: %s called with\n\t%#v\nexpected\n\t%#v", caller, params, exp.Params)
	}
	return exp.Returns
}

// Finish fails the test if any registered expectation was never consumed.
func (e *Expector) Finish() {
	if e.recorded != len(e.expectations) {
		e.T.Fatalf("mock: %d expectation(s) were not met", len(e.expectations)-e.recorded)
	}
}

type finisher interface {
	Finish()
}

// FinishAll finishes every provided mock.
func FinishAll(mocks ...finisher) {
	for _, m := range mocks {
		m.Finish()
	}
}

// SafeError converts a recorded return value into an error, tolerating nil.
func SafeError(v interface{}) error {
	if v == nil {
		return nil
	}
	return v.(error)
}

func funcName(f interface{}) string {
	if f == nil {
		return ""
	}
	pc := reflect.ValueOf(f).Pointer()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}
	return baseName(fn.Name())
}

func callerName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return ""
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}
	return baseName(fn.Name())
}

// baseName reduces a fully qualified symbol like
// "pkg/path.(*Client).Authenticate-fm" to "Authenticate".
func baseName(name string) string {
	name = path.Base(name)
	name = strings.TrimSuffix(name, "-fm")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
