package lang

import "testing"

func BenchmarkParseString(b *testing.B) {
	const source = `count > 3 && name == "admin" || 2 ^ count - 1 > threshold`
	for b.Loop() {
		if _, err := ParseString(source); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvaluate(b *testing.B) {
	x, err := ParseString(`count > 3 && name == "admin" & ""`)
	if err != nil {
		b.Fatal(err)
	}
	env := &MapEnvironment{
		Static: map[string]Value{
			"count": NewInt(4),
			"name":  NewString("admin"),
		},
	}
	for b.Loop() {
		if _, err := x.Evaluate(env); err != nil {
			b.Fatal(err)
		}
	}
}

func FuzzParseString(f *testing.F) {
	for _, seed := range []string{
		"1 + 2 * 3",
		`"a" & str(1)`,
		"-(x ^ 2) >= -4.5",
		"!(a && b) || c == null",
		`range(1, 5) == range(1, 5)`,
		`"unterminated`,
		"f(",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, source string) {
		x, err := ParseString(source)
		if err != nil {
			return
		}
		// any tree that parses must evaluate or fail cleanly
		env := &MapEnvironment{Static: map[string]Value{"a": NewBool(true)}}
		_, _ = x.Evaluate(env)
	})
}
