// Package split computes the creator/bucket division of an investment
// amount using exact decimal arithmetic.
package split

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var ErrInvalidInput = errors.New("split: invalid input")

// percentTolerance bounds how far creator+bucket percent may drift from 100
// before the project configuration is considered broken.
const percentTolerance = 0.01

var hundred = decimal.NewFromInt(100)

// Split divides total into the creator and bucket shares, rounded to cents.
// Any rounding remainder is attributed to the bucket share so that
// creator + bucket always equals total exactly.
func Split(total decimal.Decimal, creatorPercent, bucketPercent float64) (creator, bucket decimal.Decimal, err error) {
	if !total.IsPositive() {
		return decimal.Zero, decimal.Zero, ErrInvalidInput
	}
	if total.Exponent() < -2 {
		return decimal.Zero, decimal.Zero, ErrInvalidInput
	}
	if creatorPercent < 0 || creatorPercent > 100 || bucketPercent < 0 || bucketPercent > 100 {
		return decimal.Zero, decimal.Zero, ErrInvalidInput
	}
	if math.Abs(creatorPercent+bucketPercent-100) > percentTolerance {
		return decimal.Zero, decimal.Zero, ErrInvalidInput
	}

	creator = total.Mul(decimal.NewFromFloat(creatorPercent)).Div(hundred).Round(2)
	bucket = total.Mul(decimal.NewFromFloat(bucketPercent)).Div(hundred).Round(2)

	// rounding policy: the remainder goes to the bucket, never dropped
	if !creator.Add(bucket).Equal(total) {
		bucket = total.Sub(creator)
	}
	return creator, bucket, nil
}
