package decimal

import (
	"encoding/json"
	"math/big"
	"strings"
)

// Minor units per major unit. Payment APIs bill in cents
const MinorUnit = 100

var minorAsBigFloat = big.NewFloat(0).SetMode(RoundingMode).SetPrec(OperationPrec).SetInt64(MinorUnit)

// Decimal is a currency amount in major units (dollars, not cents)
type Decimal struct {
	Value *big.Float
}

const OperationPrec = 256

const RoundingMode = big.AwayFromZero

func (d *Decimal) ensure() {
	if d.Value == nil {
		d.Value = big.NewFloat(0).SetMode(RoundingMode).SetPrec(OperationPrec)
	}
}

func (d *Decimal) FromMinor(v int64) {
	d.Value = big.NewFloat(0).SetMode(RoundingMode).SetPrec(OperationPrec).SetInt64(v)
	d.Value = d.Value.Quo(d.Value, minorAsBigFloat)
}

// ToMinor rounds half away from zero, matching round(amount*100)
func (d *Decimal) ToMinor() (v int64) {
	d.ensure()

	var amountCopy big.Float
	amountCopy = *amountCopy.Copy(d.Value)
	amountCopy.Mul(&amountCopy, minorAsBigFloat)
	if amountCopy.Signbit() {
		amountCopy.Sub(&amountCopy, big.NewFloat(0.5))
	} else {
		amountCopy.Add(&amountCopy, big.NewFloat(0.5))
	}
	asInt, _ := amountCopy.Int(nil)
	return asInt.Int64()
}

func (d *Decimal) FromString(s string) (err error) {
	d.Value, _, err = big.ParseFloat(s, 10, OperationPrec, RoundingMode)
	if err != nil {
		return err
	}
	return nil
}

// Text renders the amount with exactly two decimal places
func (d *Decimal) Text() (s string) {
	d.ensure()
	return d.Value.Text('f', 2)
}

// String renders the amount without trailing zeros: 50.00 -> 50, 25.50 -> 25.5
func (d *Decimal) String() (s string) {
	s = d.Text()
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		s = "0"
	}
	return s
}

var (
	_ json.Unmarshaler = (*Decimal)(nil)
	_ json.Marshaler   = (*Decimal)(nil)
)

// Accepts both JSON numbers and numeric strings
func (d *Decimal) UnmarshalJSON(b []byte) (err error) {
	var asString string
	err = json.Unmarshal(b, &asString)
	if err != nil {
		asString = string(b)
	}

	return d.FromString(asString)
}

func (d *Decimal) MarshalJSON() (b []byte, err error) {
	return []byte("\"" + d.Text() + "\""), nil
}
