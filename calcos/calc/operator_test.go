package calc

import (
	"math"
	"testing"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		acc, disp float64
		op        Operator
		want      float64
		fault     Fault
	}{
		{"add", 2, 3, OpAdd, 5, FaultNone},
		{"subtract", 2, 3, OpSubtract, -1, FaultNone},
		{"multiply", 2.5, 4, OpMultiply, 10, FaultNone},
		{"divide", 9, 3, OpDivide, 3, FaultNone},
		{"add overflow", 999999999, 1, OpAdd, 1e9, FaultOverflow},
		{"subtract overflow", -999999999, 1, OpSubtract, -1e9, FaultOverflow},
		{"multiply overflow", 99999, 99999, OpMultiply, 9999800001, FaultOverflow},
		{"divide overflow", 999999999, 0.5, OpDivide, 1999999998, FaultOverflow},
		{"at limit", 999999998, 1, OpAdd, 999999999, FaultNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, disp, fault := Apply(tt.acc, tt.disp, tt.op)
			if acc != tt.want || disp != tt.want {
				t.Fatalf("Apply = (%v, %v), want both %v", acc, disp, tt.want)
			}
			if fault != tt.fault {
				t.Fatalf("fault = %s, want %s", fault, tt.fault)
			}
		})
	}
}

func TestApplyDivideByZeroStillDivides(t *testing.T) {
	acc, disp, fault := Apply(-5, 0, OpDivide)
	if fault != FaultDivideByZero {
		t.Fatalf("fault = %s, want divide by zero", fault)
	}
	if !math.IsInf(acc, -1) || !math.IsInf(disp, -1) {
		t.Fatalf("Apply = (%v, %v), want -Inf", acc, disp)
	}
}

func TestApplySnapsTinyResults(t *testing.T) {
	acc, disp, fault := Apply(1e-5, 1e-5, OpMultiply)
	if fault != FaultNone {
		t.Fatalf("fault = %s", fault)
	}
	if disp != 0 {
		t.Fatalf("display = %v, want 0", disp)
	}
	if acc == 0 {
		t.Fatal("accumulator should keep the unsnapped result")
	}
}

func TestOperatorGlyph(t *testing.T) {
	for op, want := range map[Operator]byte{OpNone: ' ', OpAdd: '+', OpSubtract: '-', OpMultiply: '*', OpDivide: '/'} {
		if got := op.Glyph(); got != want {
			t.Fatalf("%d.Glyph() = %q, want %q", op, got, want)
		}
	}
}
