package expr

import "math"

func (e binOp) Eval(env Env) (Value, error) {
	lv, err := e.lhs.Eval(env)
	if err != nil {
		return Value{}, err
	}
	rv, err := e.rhs.Eval(env)
	if err != nil {
		return Value{}, err
	}

	switch e.op {
	case "+":
		if lv.IsNumber() && rv.IsNumber() {
			return Number(lv.Num() + rv.Num()), nil
		}
		return String(lv.Display() + rv.Display()), nil
	case "-", "*", "/", "%":
		ln, err := requireNumber(lv)
		if err != nil {
			return Value{}, err
		}
		rn, err := requireNumber(rv)
		if err != nil {
			return Value{}, err
		}
		switch e.op {
		case "-":
			return Number(ln - rn), nil
		case "*":
			return Number(ln * rn), nil
		case "/":
			if rn == 0 {
				return Number(math.NaN()), nil // division by zero yields NaN
			}
			return Number(ln / rn), nil
		case "%":
			return Number(math.Mod(ln, rn)), nil
		}
	case "<", ">", "<=", ">=":
		ln, err := requireNumber(lv)
		if err != nil {
			return Value{}, err
		}
		rn, err := requireNumber(rv)
		if err != nil {
			return Value{}, err
		}
		switch e.op {
		case "<":
			return boolToNumber(ln < rn), nil
		case ">":
			return boolToNumber(ln > rn), nil
		case "<=":
			return boolToNumber(ln <= rn), nil
		case ">=":
			return boolToNumber(ln >= rn), nil
		}
	case "==":
		return boolToNumber(lv.Equal(rv)), nil
	case "!=":
		return boolToNumber(!lv.Equal(rv)), nil
	}
	panic("expr: unreachable binary operator " + e.op)
}

func (e unOp) Eval(env Env) (Value, error) {
	switch e.op {
	case "-":
		v, err := e.operand.Eval(env)
		if err != nil {
			return Value{}, err
		}
		n, err := requireNumber(v)
		if err != nil {
			return Value{}, err
		}
		return Number(-n), nil
	case "?":
		_, err := e.operand.Eval(env)
		return boolToNumber(err == nil), nil
	}
	panic("expr: unreachable unary operator " + e.op)
}

func (e matchExpr) Eval(env Env) (Value, error) {
	tv, err := e.test.Eval(env)
	if err != nil {
		return Value{}, err
	}
	for _, arm := range e.arms {
		if arm.lit.Equal(tv) {
			return arm.body.Eval(env)
		}
	}
	return e.dflt.Eval(env)
}
