package logging

import "github.com/dlshle/cachesvc/gr_context"

// goroutine scoped logging context; values set here show up on every log
// entry emitted from the same goroutine until cleared

const loggingContextPrefix = "$logging/"

func SetContextValue(k, v string) {
	gr_context.Put(loggingContextPrefix+k, v)
}

func DeleteContextValue(k string) {
	gr_context.Delete(loggingContextPrefix + k)
}

func ClearContext() {
	gr_context.ClearByPrefix(loggingContextPrefix)
}

func loggingContext() map[string]string {
	raw := gr_context.GetByPrefix(loggingContextPrefix)
	if len(raw) == 0 {
		return nil
	}
	res := make(map[string]string)
	for k, v := range raw {
		if str, ok := v.(string); ok {
			res[k[len(loggingContextPrefix):]] = str
		}
	}
	return res
}
