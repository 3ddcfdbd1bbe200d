package lex

import (
	"fmt"
	"math/big"
	"math/bits"
	"strconv"
)

// NumberType is the C type inferred for a numeric literal.
type NumberType int

const (
	TypeSignedInt NumberType = iota
	TypeUnsignedInt
	TypeSignedChar
	TypeUnsignedChar
	TypeSignedShort
	TypeUnsignedShort
	TypeSignedLong
	TypeUnsignedLong
	TypeSignedLongLong
	TypeUnsignedLongLong
	TypeFloat
	TypeDouble
)

var numberTypeNames = map[NumberType]string{
	TypeSignedChar:       "signed char",
	TypeUnsignedChar:     "unsigned char",
	TypeSignedShort:      "short",
	TypeUnsignedShort:    "unsigned short",
	TypeSignedInt:        "int",
	TypeUnsignedInt:      "unsigned int",
	TypeSignedLong:       "long",
	TypeUnsignedLong:     "unsigned long",
	TypeSignedLongLong:   "long long",
	TypeUnsignedLongLong: "unsigned long long",
	TypeFloat:            "float",
	TypeDouble:           "double",
}

func (t NumberType) String() string {
	if name, ok := numberTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Bits returns the storage width of the type.
func (t NumberType) Bits() int {
	switch t {
	case TypeSignedChar, TypeUnsignedChar:
		return 8
	case TypeSignedShort, TypeUnsignedShort:
		return 16
	case TypeSignedInt, TypeUnsignedInt, TypeFloat:
		return 32
	case TypeSignedLong, TypeUnsignedLong, TypeDouble:
		return 64
	}
	return 128
}

func (t NumberType) Signed() bool {
	switch t {
	case TypeUnsignedChar, TypeUnsignedShort, TypeUnsignedInt, TypeUnsignedLong, TypeUnsignedLongLong:
		return false
	}
	return true
}

// IntegerType maps a width and signedness to an integer type.
func IntegerType(size int, signed bool) (NumberType, bool) {
	var s, u NumberType
	switch size {
	case 8:
		s, u = TypeSignedChar, TypeUnsignedChar
	case 16:
		s, u = TypeSignedShort, TypeUnsignedShort
	case 32:
		s, u = TypeSignedInt, TypeUnsignedInt
	case 64:
		s, u = TypeSignedLong, TypeUnsignedLong
	case 128:
		s, u = TypeSignedLongLong, TypeUnsignedLongLong
	default:
		return 0, false
	}
	if signed {
		return s, true
	}
	return u, true
}

// Number is a numeric literal value. Integer magnitudes are stored as
// 128 bits split into Hi and Lo; floating values use Float.
type Number struct {
	Type  NumberType
	Hi    uint64
	Lo    uint64
	Float float64
}

// Int builds an integer literal value.
func Int(t NumberType, v uint64) Number {
	return Number{Type: t, Lo: v}
}

func (n Number) IsFloat() bool {
	return n.Type == TypeFloat || n.Type == TypeDouble
}

// Uint64 returns the low 64 bits of an integer value.
func (n Number) Uint64() uint64 {
	return n.Lo
}

// Big returns the full integer magnitude.
func (n Number) Big() *big.Int {
	v := new(big.Int).SetUint64(n.Hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(n.Lo))
}

func (n Number) String() string {
	if n.IsFloat() {
		return fmt.Sprintf("%s(%s)", n.Type, strconv.FormatFloat(n.Float, 'g', -1, 64))
	}
	return fmt.Sprintf("%s(%s)", n.Type, n.Big().String())
}

// u128 is the accumulator used while reading integer digits.
type u128 struct {
	hi, lo uint64
}

// mulAdd computes v*radix + digit, reporting overflow of 128 bits.
func (v u128) mulAdd(radix, digit uint64) (u128, bool) {
	carryLo, lo := bits.Mul64(v.lo, radix)
	overHi, hi := bits.Mul64(v.hi, radix)
	if overHi != 0 {
		return v, false
	}
	hi, c := bits.Add64(hi, carryLo, 0)
	if c != 0 {
		return v, false
	}
	lo, c = bits.Add64(lo, digit, 0)
	hi, c = bits.Add64(hi, 0, c)
	if c != 0 {
		return v, false
	}
	return u128{hi: hi, lo: lo}, true
}

// bitLen is the number of significant bits.
func (v u128) bitLen() int {
	if v.hi != 0 {
		return 64 + bits.Len64(v.hi)
	}
	return bits.Len64(v.lo)
}

// fits reports whether v is representable in size bits.
func (v u128) fits(size int, signed bool) bool {
	if signed {
		size--
	}
	return v.bitLen() <= size
}
