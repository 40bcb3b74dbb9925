// Package profile starts and stops runtime profiling of the dlisp console.
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof ./
//	dlisp --pprof-mode cpu run bench.lsp
//	go tool pprof -http=: ~/.cache/dlisp/pprof/cpu.pprof
//
// Without the tag, [Start] always returns a no-op [Stopper] and [Modes] is
// empty. With it, [net/http/pprof] handlers are also registered on the
// default mux.
package profile
