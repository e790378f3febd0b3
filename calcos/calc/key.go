package calc

import "fmt"

// Key is a key code as reported by the panel keyboard object.
type Key uint16

const (
	KeyDecimal  Key = '.'
	KeyAdd      Key = '+'
	KeySubtract Key = '-'
	KeyMultiply Key = '*'
	KeyDivide   Key = '/'
	KeyEquals   Key = '='

	KeyClearAll   Key = 'a'
	KeyClearEntry Key = 'c'
	KeySqrt       Key = 's'

	KeyMemStore    Key = 128
	KeyMemAdd      Key = 129
	KeyMemSubtract Key = 130
	KeyMemRecall   Key = 131
	KeyMemClear    Key = 132

	KeySign Key = 140
)

// Digit returns the key code for digit d (0-9).
func Digit(d int) Key {
	return Key('0' + d)
}

// IsDigit reports whether k is one of the digit keys.
func (k Key) IsDigit() bool {
	return k >= '0' && k <= '9'
}

func (k Key) operator() Operator {
	switch k {
	case KeyAdd:
		return OpAdd
	case KeySubtract:
		return OpSubtract
	case KeyMultiply:
		return OpMultiply
	case KeyDivide:
		return OpDivide
	default:
		return OpNone
	}
}

func (k Key) String() string {
	if k.IsDigit() {
		return string(rune(k))
	}
	switch k {
	case KeyDecimal, KeyAdd, KeySubtract, KeyMultiply, KeyDivide, KeyEquals:
		return string(rune(k))
	case KeyClearAll:
		return "AC"
	case KeyClearEntry:
		return "CE"
	case KeySqrt:
		return "sqrt"
	case KeyMemStore:
		return "MS"
	case KeyMemAdd:
		return "M+"
	case KeyMemSubtract:
		return "M-"
	case KeyMemRecall:
		return "MR"
	case KeyMemClear:
		return "MC"
	case KeySign:
		return "+/-"
	default:
		return fmt.Sprintf("0x%02X", uint16(k))
	}
}

// ParseKeys converts a compact key script into key codes.
//
// Digits, ".", "+", "-", "*", "/", "=", "a" (AC), "c" (CE) and "s" (sqrt) map to
// themselves. Bracketed names map to the remaining keys: [MS] [M+] [M-] [MR] [MC] [+/-].
// Whitespace is skipped. Any other character is passed through as its code.
func ParseKeys(script string) ([]Key, error) {
	named := map[string]Key{
		"MS":  KeyMemStore,
		"M+":  KeyMemAdd,
		"M-":  KeyMemSubtract,
		"MR":  KeyMemRecall,
		"MC":  KeyMemClear,
		"+/-": KeySign,
		"AC":  KeyClearAll,
		"CE":  KeyClearEntry,
	}

	var keys []Key
	for i := 0; i < len(script); i++ {
		c := script[i]
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		case '[':
			end := -1
			for j := i + 1; j < len(script); j++ {
				if script[j] == ']' {
					end = j
					break
				}
			}
			if end < 0 {
				return nil, fmt.Errorf("key script: unterminated name at offset %d", i)
			}
			name := script[i+1 : end]
			k, ok := named[name]
			if !ok {
				return nil, fmt.Errorf("key script: unknown key name %q", name)
			}
			keys = append(keys, k)
			i = end
		default:
			keys = append(keys, Key(c))
		}
	}
	return keys, nil
}
