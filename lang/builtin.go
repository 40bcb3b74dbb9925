package lang

// NewRootEnv returns a root [Env] holding a fresh instance of every builtin
// operator. Environments created by separate calls share nothing.
func NewRootEnv() *Env {
	env := NewEnv()

	for _, b := range Library() {
		env.Define(Symbol(b.Name), b)
	}

	return env
}

// Library returns newly allocated builtin operators in reference order.
func Library() []*Builtin {
	var lib []*Builtin

	for _, group := range [][]*Builtin{
		controlBuiltins(),
		typeBuiltins(),
		numberBuiltins(),
		textBuiltins(),
		listBuiltins(),
		systemBuiltins(),
	} {
		lib = append(lib, group...)
	}

	return lib
}

// Signature renders the call shape of an applicable value, such as
// "(number/add a b)". Unevaluated lambda forms render like closures. Other
// values yield "".
func Signature(name string, e Expr) string {
	if b, ok := e.(*Builtin); ok {
		if b.Params == "" {
			return "(" + name + ")"
		}

		return "(" + name + " " + b.Params + ")"
	}

	params, ok := Params(e, nil)
	if !ok {
		return ""
	}

	sig := "(" + name
	for _, p := range params {
		sig += " " + string(p)
	}

	return sig + ")"
}

func argsOfKind(args []Expr, kinds ...Kind) bool {
	if len(args) != len(kinds) {
		return false
	}

	for i, k := range kinds {
		if args[i].Kind() != k {
			return false
		}
	}

	return true
}
