package objspace

import (
	"errors"
	"fmt"
	"math/bits"
	"sort"
	"strings"
	"sync"
)

// Impl implements one operation for one operand signature. Returning
// ErrNotImplemented declines the operands and lets the fallback chain run.
type Impl func(s *Space, args []Value) (Value, error)

// MaxArity is the largest operand count a signature may have
const MaxArity = 4

type signature struct {
	op    string
	n     int
	kinds [MaxArity]Kind
}

func (sig signature) String() string {
	names := make([]string, sig.n)
	for i := 0; i < sig.n; i++ {
		names[i] = sig.kinds[i].String()
	}
	return fmt.Sprintf("%s(%s)", sig.op, strings.Join(names, ", "))
}

// DispatchTable maps (operation, operand kinds) to implementations. It is
// filled once and then frozen; lookups after Freeze take no locks.
type DispatchTable struct {
	entries map[signature]Impl
	ops     map[string]bool
	frozen  bool
}

// NewDispatchTable creates an empty, unfrozen table
func NewDispatchTable() *DispatchTable {
	return &DispatchTable{
		entries: make(map[signature]Impl),
		ops:     make(map[string]bool),
	}
}

func makeSignature(op string, kinds []Kind) signature {
	if len(kinds) == 0 || len(kinds) > MaxArity {
		panic(fmt.Sprintf("objspace: signature arity %d out of range for %q", len(kinds), op))
	}
	sig := signature{op: op, n: len(kinds)}
	copy(sig.kinds[:], kinds)
	return sig
}

// Register binds impl to op for the operand kinds. Registering into a frozen
// table or registering a signature twice is a programming error.
func (t *DispatchTable) Register(op string, impl Impl, kinds ...Kind) {
	if t.frozen {
		panic(fmt.Sprintf("objspace: register %q on frozen dispatch table", op))
	}
	sig := makeSignature(op, kinds)
	if _, dup := t.entries[sig]; dup {
		panic(fmt.Sprintf("objspace: duplicate registration of %s", sig))
	}
	t.entries[sig] = impl
	t.ops[op] = true
}

// Freeze makes the table read-only
func (t *DispatchTable) Freeze() {
	t.frozen = true
}

// Frozen reports whether Freeze has been called
func (t *DispatchTable) Frozen() bool {
	return t.frozen
}

// Ops returns the registered operation names, sorted
func (t *DispatchTable) Ops() []string {
	ops := make([]string, 0, len(t.ops))
	for op := range t.ops {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// wildcardOrders holds, per arity, the wildcard masks to try: bit i set
// means position i is looked up as KindAny. Fewer wildcards come first;
// among equals the masks that keep the leftmost positions specific win.
var wildcardOrders = func() [MaxArity + 1][]uint {
	var orders [MaxArity + 1][]uint
	for n := 1; n <= MaxArity; n++ {
		masks := make([]uint, 0, 1<<n)
		for m := uint(0); m < 1<<n; m++ {
			masks = append(masks, m)
		}
		sort.Slice(masks, func(i, j int) bool {
			ci, cj := bits.OnesCount(masks[i]), bits.OnesCount(masks[j])
			if ci != cj {
				return ci < cj
			}
			return masks[i] > masks[j]
		})
		orders[n] = masks
	}
	return orders
}()

// Resolve finds the implementation for op applied to operands of the given
// kinds: the exact signature first, then signatures with KindAny positions.
// A miss is ErrNotImplemented.
func (t *DispatchTable) Resolve(op string, kinds ...Kind) (Impl, error) {
	if len(kinds) == 0 || len(kinds) > MaxArity || !t.ops[op] {
		return nil, ErrNotImplemented
	}
	sig := makeSignature(op, kinds)
	for _, mask := range wildcardOrders[len(kinds)] {
		key := sig
		for i := 0; i < sig.n; i++ {
			if mask&(1<<uint(i)) != 0 {
				key.kinds[i] = KindAny
			}
		}
		if impl, ok := t.entries[key]; ok {
			return impl, nil
		}
	}
	return nil, ErrNotImplemented
}

var (
	defaultTable     *DispatchTable
	defaultTableOnce sync.Once
)

// DefaultDispatchTable returns the process-wide table with every built-in
// operation registered. It is built on first use and frozen.
func DefaultDispatchTable() *DispatchTable {
	defaultTableOnce.Do(func() {
		t := NewDispatchTable()
		registerNone(t)
		registerNumeric(t)
		registerUnicode(t)
		registerBytes(t)
		registerContainers(t)
		registerRepr(t)
		t.Freeze()
		defaultTable = t
	})
	return defaultTable
}

// reflected maps a binary operation to the operation that computes the
// same result with the operands swapped
var reflected = map[string]string{
	"add": "add",
	"mul": "mul",
	"eq":  "eq",
	"ne":  "ne",
	"and": "and",
	"or":  "or",
	"xor": "xor",
	"lt":  "gt",
	"gt":  "lt",
	"le":  "ge",
	"ge":  "le",
}

// binarySymbols are the operator spellings used in TypeError messages
var binarySymbols = map[string]string{
	"add":      "+",
	"sub":      "-",
	"mul":      "*",
	"truediv":  "/",
	"floordiv": "//",
	"mod":      "%",
	"pow":      "** or pow()",
	"and":      "&",
	"or":       "|",
	"xor":      "^",
	"lt":       "<",
	"le":       "<=",
	"gt":       ">",
	"ge":       ">=",
	"eq":       "==",
	"ne":       "!=",
}

// IsBinaryOp reports whether op goes through the binary fallback protocol
func IsBinaryOp(op string) bool {
	_, ok := binarySymbols[op]
	return ok
}

// invoke runs the implementation registered for args, if any
func (s *Space) invoke(op string, args []Value) (Value, error) {
	kinds := make([]Kind, len(args))
	for i, a := range args {
		kinds[i] = a.Kind()
	}
	impl, err := s.table.Resolve(op, kinds...)
	if err != nil {
		return nil, err
	}
	res, err := impl(s, args)
	if err != nil {
		return nil, err
	}
	if err := s.checkResultSize(op, res, args); err != nil {
		return nil, err
	}
	return res, nil
}

// tryBinary attempts the direct and then the reflected form of op
func (s *Space) tryBinary(op string, a, b Value) (Value, error) {
	res, err := s.invoke(op, []Value{a, b})
	if !errors.Is(err, ErrNotImplemented) {
		return res, err
	}
	if rop, ok := reflected[op]; ok {
		res, err = s.invoke(rop, []Value{b, a})
		if !errors.Is(err, ErrNotImplemented) {
			s.logger.TraceCat(CatDispatch, "%s(%s, %s) served by reflected %s", op, a.TypeName(), b.TypeName(), rop)
			return res, err
		}
	}
	return nil, ErrNotImplemented
}

// Binary applies a binary operation with the full fallback protocol: exact
// or wildcard match, reflected operands, then a single coercion retry. When
// everything declines the result is a TypeError naming both operand types.
func (s *Space) Binary(op string, a, b Value) (Value, error) {
	if a == nil || b == nil {
		return nil, newError(SystemError, "%s: nil operand", op)
	}
	res, err := s.tryBinary(op, a, b)
	if !errors.Is(err, ErrNotImplemented) {
		return res, s.wrapError(err)
	}

	if ca, cb, ok := coercePair(a, b); ok {
		s.logger.DebugCat(CatDispatch, "%s: coercing (%s, %s) to (%s, %s)",
			op, a.TypeName(), b.TypeName(), ca.TypeName(), cb.TypeName())
		res, err = s.tryBinary(op, ca, cb)
		if !errors.Is(err, ErrNotImplemented) {
			return res, s.wrapError(err)
		}
	}

	// Equality without an implementation falls back to identity
	switch op {
	case "eq":
		return NewBool(IsW(a, b)), nil
	case "ne":
		return NewBool(!IsW(a, b)), nil
	}

	s.logger.DebugCat(CatDispatch, "no implementation for %s(%s, %s)", op, a.TypeName(), b.TypeName())
	sym, ok := binarySymbols[op]
	if !ok {
		sym = op
	}
	return nil, newError(TypeError, "unsupported operand type(s) for %s: '%s' and '%s'",
		sym, a.TypeName(), b.TypeName())
}

// Call applies a named operation. Binary operators are routed through
// Binary; every other operation must match a registered signature.
func (s *Space) Call(op string, args ...Value) (Value, error) {
	if len(args) == 2 && IsBinaryOp(op) {
		return s.Binary(op, args[0], args[1])
	}
	for _, a := range args {
		if a == nil {
			return nil, newError(SystemError, "%s: nil operand", op)
		}
	}
	res, err := s.invoke(op, args)
	if !errors.Is(err, ErrNotImplemented) {
		return res, s.wrapError(err)
	}

	names := make([]string, len(args))
	for i, a := range args {
		names[i] = "'" + a.TypeName() + "'"
	}
	s.logger.DebugCat(CatDispatch, "no implementation for %s(%s)", op, strings.Join(names, ", "))
	if len(args) == 0 {
		return nil, newError(TypeError, "'%s' requires an operand", op)
	}
	return nil, newError(TypeError, "'%s' not supported for %s", op, strings.Join(names, ", "))
}
