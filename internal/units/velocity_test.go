package units

import "testing"

func TestQuantizeLinearVelocityComponent(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		for _, mps := range []float64{0, 1.2, -1.2, 12.3, -3276.8} {
			v := QuantizeLinearVelocityComponent(mps)
			back := DequantizeLinearVelocityComponent(v)
			if diff := back - mps; diff > 0.1 || diff < -0.1 {
				t.Fatalf("round trip of %v: got %v", mps, back)
			}
		}
	})

	t.Run("saturates at SVINT16 bounds", func(t *testing.T) {
		if v := QuantizeLinearVelocityComponent(1e9); v != svint16Max {
			t.Fatalf("value = %d, want %d", v, svint16Max)
		}
		if v := QuantizeLinearVelocityComponent(-1e9); v != svint16Min {
			t.Fatalf("value = %d, want %d", v, svint16Min)
		}
	})
}
