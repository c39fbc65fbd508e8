package units

import "testing"

func TestQuantizeMass(t *testing.T) {
	t.Parallel()

	t.Run("below threshold uses grams", func(t *testing.T) {
		value, unit := QuantizeMass(1.234)
		if unit != MassUnitGrams {
			t.Fatalf("unit = %v, want Grams", unit)
		}
		if value != 1234 {
			t.Fatalf("value = %d, want 1234", value)
		}
	})

	t.Run("above threshold uses kilograms", func(t *testing.T) {
		value, unit := QuantizeMass(200.0)
		if unit != MassUnitKilograms {
			t.Fatalf("unit = %v, want Kilograms", unit)
		}
		if value != 200 {
			t.Fatalf("value = %d, want 200", value)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		for _, kg := range []float64{0, 0.5, 65.535, 65.536, 1000, 50000} {
			value, unit := QuantizeMass(kg)
			got := DequantizeMass(value, unit)
			// Half of one quantization step: 1 g in grams, 1 kg in kilograms.
			tolerance := 0.0005
			if unit == MassUnitKilograms {
				tolerance = 0.5
			}
			if diff := got - kg; diff > tolerance || diff < -tolerance {
				t.Fatalf("round trip of %v kg produced %v", kg, got)
			}
		}
	})
}

func TestQuantizeAltitude(t *testing.T) {
	t.Parallel()

	value, unit := QuantizeAltitude(100)
	if unit != AltitudeUnitMeters || value != 100 {
		t.Fatalf("got (%d, %v), want (100, Meters)", value, unit)
	}

	value, unit = QuantizeAltitude(10000)
	if unit != AltitudeUnitDekameters {
		t.Fatalf("unit = %v, want Dekameters", unit)
	}
	if got := DequantizeAltitude(value, unit); got != 10000 {
		t.Fatalf("round trip = %v, want 10000", got)
	}
}

func TestQuantizeEntityLocation(t *testing.T) {
	t.Parallel()

	qx, qy, qz, unit := QuantizeEntityLocation(1.0, 2.0, 3.0)
	if unit != LocationUnitCentimeters {
		t.Fatalf("unit = %v, want Centimeters", unit)
	}
	if qx != 100 || qy != 200 || qz != 300 {
		t.Fatalf("got (%d, %d, %d), want (100, 200, 300)", qx, qy, qz)
	}

	qx, qy, qz, unit = QuantizeEntityLocation(1.0, 500.0, 3.0)
	if unit != LocationUnitMeters {
		t.Fatalf("unit = %v, want Meters (shared across all three components)", unit)
	}
	x, y, z := DequantizeEntityLocation(qx, qy, qz, unit)
	if x != 1 || y != 500 || z != 3 {
		t.Fatalf("round trip = (%v, %v, %v)", x, y, z)
	}
}

func TestQuantizeLinearVelocityComponent_Saturates(t *testing.T) {
	t.Parallel()

	if got := QuantizeLinearVelocityComponent(10000000); got != svint16Max {
		t.Fatalf("got %d, want saturated max %d", got, svint16Max)
	}
	if got := QuantizeLinearVelocityComponent(-10000000); got != svint16Min {
		t.Fatalf("got %d, want saturated min %d", got, svint16Min)
	}
	if got := QuantizeLinearVelocityComponent(10.0); got != 100 {
		t.Fatalf("got %d, want 100 (10 m/s = 100 dm/s)", got)
	}
}
