package test_utils

import (
	"strings"
	"sync"
	"testing"
	"time"
)

type assertion struct {
	head         *assertion
	id           string
	description  string
	assertion    func()
	shouldAssert bool
	next         *assertion
}

type Assertable interface {
	Concurrently(id string, desc string, actions ...func()) Assertable
	Then(id string, assertion func()) Assertable
	ThenWithDescription(id string, description string, assertion func()) Assertable
	Cases(cases ...*assertion) Assertable
	Do(t *testing.T)
}

func New(id string, assertionCase func()) *assertion {
	return NewWithDescription(id, "", assertionCase)
}

func NewWithDescription(id string, description string, assertionCase func()) *assertion {
	a := &assertion{
		id:           id,
		description:  description,
		assertion:    assertionCase,
		shouldAssert: true,
	}
	a.head = a
	return a
}

func NewGroup(id string, description string) Assertable {
	a := &assertion{
		id:          id,
		description: description,
	}
	a.head = a
	return a
}

func (a *assertion) Concurrently(id string, desc string, actions ...func()) Assertable {
	actionFunc := func() {
		var wg sync.WaitGroup
		panics := make([]any, len(actions))
		hasPanic := false
		for i, act := range actions {
			wg.Add(1)
			go (func(action func(), i int) {
				defer func() {
					if recovered := recover(); recovered != nil {
						panics[i] = recovered
						hasPanic = true
					}
					wg.Done()
				}()
				action()
			})(act, i)
		}
		wg.Wait()
		if hasPanic {
			panic(panics)
		}
	}
	a.next = &assertion{
		head:         a.head,
		id:           id,
		description:  desc,
		assertion:    actionFunc,
		shouldAssert: false,
	}
	return a.next
}

func (a *assertion) Then(id string, assertionCase func()) Assertable {
	return a.ThenWithDescription(id, "", assertionCase)
}

func (a *assertion) ThenWithDescription(id string, description string, assertionCase func()) Assertable {
	a.next = &assertion{
		head:         a.head,
		id:           id,
		description:  description,
		assertion:    assertionCase,
		shouldAssert: true,
	}
	return a.next
}

func (a *assertion) Cases(cases ...*assertion) Assertable {
	curr := a
	for _, c := range cases {
		if c != nil {
			curr.next = c
			c.head = curr.head
			curr = c
		}
	}
	return curr
}

func (a *assertion) Do(t *testing.T) {
	startTime := time.Now()
	curr := a.head
	indent := 0
	for curr != nil {
		if curr.shouldAssert {
			t.Logf("%sRunning case %s%s\n", getIndentations(indent), curr.id, getDescription(curr))
		} else {
			t.Logf("%sRunning operation %s%s\n", getIndentations(indent), curr.id, getDescription(curr))
		}
		if curr.assertion != nil {
			if curr.shouldAssert {
				doAssertCase(t, indent, curr.id, curr.assertion)
			} else {
				curr.assertion()
			}
		} else {
			indent += 2
		}
		curr = curr.next
	}
	t.Log("All test finished, overall runtime: ", time.Since(startTime))
}

func doAssertCase(t *testing.T, indent int, id string, assertionCase func()) {
	errorMessage := ""
	res := true
	defer func() {
		if recovered := recover(); recovered != nil {
			res = false
			if isAssertionFailurePanic(recovered) {
				errorMessage = recovered.(string)
			} else {
				errorMessage = "panic recovered from test case"
			}
		}
		if res {
			t.Logf("%s✅ %s passed\n", getIndentations(indent), id)
		} else {
			t.Errorf("%s❌ %s failed\n", getIndentations(indent), id)
			t.Error(errorMessage)
		}
	}()
	assertionCase()
}

func getIndentations(level int) string {
	if level == 0 {
		return ""
	}
	builder := strings.Builder{}
	for level > 0 {
		builder.WriteByte(' ')
		level--
	}
	return builder.String()
}

func getDescription(a *assertion) string {
	if a.description == "" {
		return ""
	}
	return "[" + a.description + "]"
}
