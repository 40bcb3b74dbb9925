package lang

import (
	"context"
	"testing"
)

type request struct {
	tag  string
	args []string
}

type recorder struct {
	requests []request
	reply    Expr
}

func (r *recorder) Send(_ context.Context, tag string, args []Expr) Expr {
	req := request{tag: tag}
	for _, a := range args {
		req.args = append(req.args, Format(a))
	}

	r.requests = append(r.requests, req)

	return r.reply
}

func TestRegisterHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want request
	}{
		{"(log (number/add 1 2))", request{"log", []string{"3"}}},
		{"(clear)", request{"clear", nil}},
		{"(quit)", request{"quit", nil}},
		{"(swap 'dm')", request{"setcontext", []string{"'dm'"}}},
		{"(open 'notes.lsp')", request{"open", []string{"'notes.lsp'"}}},
		{"(host/send 'LOG' 1 2)", request{"log", []string{"1", "2"}}},
		{"(host/send custom)", request{"custom", nil}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			h := &recorder{}
			in := newTestInterpreter()
			env := NewRootEnv()

			if err := RegisterHost(t.Context(), in, env, h); err != nil {
				t.Fatal(err)
			}

			got, err := in.EvaluateSource(t.Context(), tt.src, env)
			if err != nil {
				t.Fatal(err)
			}

			if got != Text("") {
				t.Errorf("result = %s, want empty text", Format(got))
			}

			if len(h.requests) != 1 {
				t.Fatalf("got %d requests, want 1", len(h.requests))
			}

			r := h.requests[0]
			if r.tag != tt.want.tag || len(r.args) != len(tt.want.args) {
				t.Fatalf("request = %+v, want %+v", r, tt.want)
			}

			for i := range r.args {
				if r.args[i] != tt.want.args[i] {
					t.Errorf("arg %d = %s, want %s", i, r.args[i], tt.want.args[i])
				}
			}
		})
	}
}

func TestRegisterHost_Reply(t *testing.T) {
	t.Parallel()

	in := newTestInterpreter()
	env := NewRootEnv()

	h := HostFunc(func(_ context.Context, tag string, _ []Expr) Expr {
		return Text("ok:" + tag)
	})

	if err := RegisterHost(t.Context(), in, env, h); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		src  string
		want string
	}{
		{"(clear)", "ok:clear"},
		{"(host/send)", "Error: host/send requires a tag"},
		{"(host/send 1)", "Error: host/send tag must be text, got number"},
	}

	for _, tt := range tests {
		got, err := in.EvaluateSource(t.Context(), tt.src, env)
		if err != nil {
			t.Fatal(err)
		}

		if Display(got) != tt.want {
			t.Errorf("%s = %q, want %q", tt.src, Display(got), tt.want)
		}
	}
}
