package lang

import (
	"log/slog"

	"github.com/ardnew/forma/log"
)

// Evaluate resolves the expression against env, returning its value.
// Options override the expression's parse-time defaults for this
// evaluation only. Evaluate is safe to call concurrently.
func (x *Expression) Evaluate(env Environment, opts ...Option) (Value, error) {
	o := x.opts
	for _, opt := range opts {
		opt(&o)
	}
	if env == nil {
		env = EmptyEnvironment()
	}
	registry := o.registry
	if registry == nil {
		registry = defaultRegistry()
	}
	ev := &evaluator{env: env, registry: registry, logger: o.logger}
	result, err := ev.eval(x.root)
	if err != nil {
		o.logger.Trace("evaluation failed",
			slog.String("source", x.source), slog.Any("error", err))
		return Value{}, err
	}
	o.logger.Trace("evaluated expression",
		slog.String("source", x.source), slog.Any("result", result))
	return result, nil
}

// evaluator walks a tree against one environment. It holds no state
// beyond its configuration, so a fresh one is cheap per evaluation.
type evaluator struct {
	env      Environment
	registry *Registry
	logger   log.Logger
}

func (ev *evaluator) eval(n Node) (Value, error) {
	switch n := n.(type) {
	case *IntLiteral:
		return NewInt(n.Value), nil
	case *FloatLiteral:
		return NewFloat(n.Value), nil
	case *StringLiteral:
		return NewString(n.Value), nil
	case *BoolLiteral:
		return NewBool(n.Value), nil
	case *NullLiteral:
		return NewNull(), nil
	case *Identifier:
		return ev.evalIdentifier(n)
	case *FlipSign:
		v, err := ev.eval(n.Operand)
		if err != nil {
			return Value{}, err
		}
		return negate(v)
	case *Invert:
		v, err := ev.eval(n.Operand)
		if err != nil {
			return Value{}, err
		}
		b, ok := v.AsBool()
		if !ok {
			return Value{}, ErrNotBoolean.Wrapf("cannot invert %s", v.Type())
		}
		return NewBool(!b), nil
	case *Math:
		return ev.evalMath(n)
	case *Comparison:
		return ev.evalComparison(n)
	case *LogicalAnd:
		return ev.evalLogical(n.LHS, n.RHS, false)
	case *LogicalOr:
		return ev.evalLogical(n.LHS, n.RHS, true)
	case *Concat:
		lhs, err := ev.eval(n.LHS)
		if err != nil {
			return Value{}, err
		}
		rhs, err := ev.eval(n.RHS)
		if err != nil {
			return Value{}, err
		}
		return NewString(lhs.AsString() + rhs.AsString()), nil
	case *Call:
		return ev.evalCall(n)
	default:
		return Value{}, ErrInvalidOperands.Wrapf("unknown node %T", n)
	}
}

// evalIdentifier resolves a variable reference: static variables first,
// then live suppliers. Live suppliers are invoked on every reference.
func (ev *evaluator) evalIdentifier(n *Identifier) (Value, error) {
	v, ok := ev.lookupVariable(n.Name)
	if !ok {
		err := ErrUnknownVariable.
			Wrapf("%q", n.Name).
			With(slog.String("name", n.Name))
		if hint := suggest(n.Name, ev.variableNames()); hint != "" {
			err = err.Wrapf("%q (did you mean %s?)", n.Name, hint)
		}
		return Value{}, err
	}
	if n.Negated {
		return negate(v)
	}
	return v, nil
}

func (ev *evaluator) lookupVariable(name string) (Value, bool) {
	if static := ev.env.StaticVariables(); static != nil {
		if v, ok := static[name]; ok {
			return v, true
		}
	}
	if live := ev.env.LiveVariables(); live != nil {
		if supplier, ok := live[name]; ok && supplier != nil {
			return supplier(), true
		}
	}
	return Value{}, false
}

func (ev *evaluator) variableNames() []string {
	var names []string
	for name := range ev.env.StaticVariables() {
		names = append(names, name)
	}
	for name := range ev.env.LiveVariables() {
		names = append(names, name)
	}
	return names
}

func (ev *evaluator) evalMath(n *Math) (Value, error) {
	lhs, err := ev.eval(n.LHS)
	if err != nil {
		return Value{}, err
	}
	rhs, err := ev.eval(n.RHS)
	if err != nil {
		return Value{}, err
	}
	return applyMath(n.Op, lhs, rhs)
}

func (ev *evaluator) evalComparison(n *Comparison) (Value, error) {
	lhs, err := ev.eval(n.LHS)
	if err != nil {
		return Value{}, err
	}
	rhs, err := ev.eval(n.RHS)
	if err != nil {
		return Value{}, err
	}
	switch n.Op {
	case CmpEqual:
		return NewBool(LooseEqual(lhs, rhs)), nil
	case CmpNotEqual:
		return NewBool(!LooseEqual(lhs, rhs)), nil
	case CmpEqualExact:
		return NewBool(ExactEqual(lhs, rhs)), nil
	case CmpNotEqualExact:
		return NewBool(!ExactEqual(lhs, rhs)), nil
	}
	cmp, err := compareOrder(lhs, rhs)
	if err != nil {
		return Value{}, err
	}
	switch n.Op {
	case CmpGreater:
		return NewBool(cmp > 0), nil
	case CmpGreaterEqual:
		return NewBool(cmp >= 0), nil
	case CmpLess:
		return NewBool(cmp < 0), nil
	default:
		return NewBool(cmp <= 0), nil
	}
}

// evalLogical implements short-circuit conjunction and disjunction.
// When lhs alone decides the result, rhs is never evaluated.
func (ev *evaluator) evalLogical(lhs, rhs Node, isOr bool) (Value, error) {
	lv, err := ev.eval(lhs)
	if err != nil {
		return Value{}, err
	}
	lb, ok := lv.AsBool()
	if !ok {
		return Value{}, ErrNotBoolean.Wrapf("left operand is %s", lv.Type())
	}
	if lb == isOr {
		return NewBool(isOr), nil
	}
	rv, err := ev.eval(rhs)
	if err != nil {
		return Value{}, err
	}
	rb, ok := rv.AsBool()
	if !ok {
		return Value{}, ErrNotBoolean.Wrapf("right operand is %s", rv.Type())
	}
	return NewBool(rb), nil
}

// evalCall resolves the callee through the environment's functions,
// falling back to the registry, then evaluates arguments left to right
// and validates them against the callee's contract.
func (ev *evaluator) evalCall(n *Call) (Value, error) {
	fn := ev.lookupFunction(n.Name)
	if fn == nil {
		err := ErrUnknownFunction.
			Wrapf("%q", n.Name).
			With(slog.String("name", n.Name))
		if hint := suggest(n.Name, ev.functionNames()); hint != "" {
			err = err.Wrapf("%q (did you mean %s?)", n.Name, hint)
		}
		return Value{}, err
	}
	args := make([]Value, len(n.Args))
	for i, arg := range n.Args {
		v, err := ev.eval(arg)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	checked, err := checkArguments(n.Name, fn.Parameters(), args)
	if err != nil {
		return Value{}, err
	}
	ev.logger.Trace("calling function",
		slog.String("name", n.Name), slog.Int("args", len(checked)))
	return fn.Call(ev.env, checked)
}

func (ev *evaluator) lookupFunction(name string) Function {
	if funcs := ev.env.Functions(); funcs != nil {
		if fn, ok := funcs[name]; ok {
			return fn
		}
	}
	if fn, ok := ev.registry.Lookup(name); ok {
		return fn
	}
	return nil
}

func (ev *evaluator) functionNames() []string {
	var names []string
	for name := range ev.env.Functions() {
		names = append(names, name)
	}
	names = append(names, ev.registry.Names()...)
	return names
}
