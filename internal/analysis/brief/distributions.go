package brief

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// exactKSMaxN is the largest sample size for which the exact
	// Kolmogorov distribution is evaluated by matrix power.
	exactKSMaxN = 1000

	// mtwScale keeps intermediate matrix powers inside float64 range.
	mtwScale    = 1e140
	mtwScaleExp = 140
)

// StatisticalDistributions provides unified access to the reference
// distributions used by the goodness-of-fit tests.
type StatisticalDistributions struct{}

// NewDistributions creates a new distributions utility
func NewDistributions() *StatisticalDistributions {
	return &StatisticalDistributions{}
}

// ChiSquarePValue computes the upper-tail probability of the chi-square
// distribution.
func (sd *StatisticalDistributions) ChiSquarePValue(chiSquare float64, degreesOfFreedom int) float64 {
	if degreesOfFreedom <= 0 || math.IsNaN(chiSquare) {
		return 1.0
	}
	if math.IsInf(chiSquare, 1) {
		return 0
	}

	chiDist := distuv.ChiSquared{K: float64(degreesOfFreedom)}
	return clampProbability(chiDist.Survival(chiSquare))
}

// UniformCDF computes the cumulative distribution function of the
// continuous uniform distribution on [min, max].
func (sd *StatisticalDistributions) UniformCDF(x, min, max float64) float64 {
	if max <= min {
		if x < min {
			return 0
		}
		return 1
	}
	u := distuv.Uniform{Min: min, Max: max}
	return u.CDF(x)
}

// KolmogorovSmirnovPValue returns P(D_n >= d) for the two-sided
// one-sample Kolmogorov-Smirnov statistic of a sample of size n.
func (sd *StatisticalDistributions) KolmogorovSmirnovPValue(d float64, n int) float64 {
	if n <= 0 || math.IsNaN(d) || d <= 0 {
		return 1.0
	}
	if d >= 1 {
		return 0
	}

	nf := float64(n)

	// D_n is never smaller than 1/(2n).
	if d <= 1/(2*nf) {
		return 1.0
	}
	// Exact upper tail.
	if d >= 1-1/nf {
		return clampProbability(2 * math.Pow(1-d, nf))
	}

	// Far tail: the series is accurate to many digits here.
	s := nf * d * d
	if s > 7.24 || (s > 3.76 && n > 99) {
		return clampProbability(2 * math.Exp(-(2.000071+0.331/math.Sqrt(nf)+1.409/nf)*s))
	}

	if n <= exactKSMaxN {
		return clampProbability(1 - kolmogorovExactCDF(d, n))
	}

	lambda := (math.Sqrt(nf) + 0.12 + 0.11/math.Sqrt(nf)) * d
	return clampProbability(kolmogorovSurvival(lambda))
}

// kolmogorovExactCDF evaluates P(D_n < d) with the Marsaglia-Tsang-Wang
// matrix method.
func kolmogorovExactCDF(d float64, n int) float64 {
	nf := float64(n)
	k := int(nf*d) + 1
	m := 2*k - 1
	h := float64(k) - nf*d

	H := mat.NewDense(m, m, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			if i-j+1 >= 0 {
				H.Set(i, j, 1)
			}
		}
	}
	for i := 0; i < m; i++ {
		H.Set(i, 0, H.At(i, 0)-math.Pow(h, float64(i+1)))
		H.Set(m-1, i, H.At(m-1, i)-math.Pow(h, float64(m-i)))
	}
	if 2*h-1 > 0 {
		H.Set(m-1, 0, H.At(m-1, 0)+math.Pow(2*h-1, float64(m)))
	}
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			span := i - j + 1
			if span <= 0 {
				continue
			}
			v := H.At(i, j)
			for g := 2; g <= span; g++ {
				v /= float64(g)
			}
			H.Set(i, j, v)
		}
	}

	Q, exp := scaledPower(H, n)
	s := Q.At(k-1, k-1)
	for i := 1; i <= n; i++ {
		s = s * float64(i) / nf
		if s != 0 && s < 1/mtwScale {
			s *= mtwScale
			exp -= mtwScaleExp
		}
	}
	return s * math.Pow(10, float64(exp))
}

// scaledPower computes a^n as (result, e) with a^n = result * 10^e.
func scaledPower(a *mat.Dense, n int) (*mat.Dense, int) {
	if n == 1 {
		return mat.DenseCopyOf(a), 0
	}

	half, halfExp := scaledPower(a, n/2)
	var sq mat.Dense
	sq.Mul(half, half)
	exp := 2 * halfExp

	result := &sq
	if n%2 == 1 {
		var odd mat.Dense
		odd.Mul(a, &sq)
		result = &odd
	}

	m, _ := result.Dims()
	if result.At(m/2, m/2) > mtwScale {
		result.Scale(1/mtwScale, result)
		exp += mtwScaleExp
	}
	return result, exp
}

// kolmogorovSurvival is the limiting distribution Q(lambda) = P(K > lambda).
func kolmogorovSurvival(lambda float64) float64 {
	if lambda <= 0 {
		return 1
	}

	if lambda < 1.18 {
		// Jacobi theta form converges fast for small lambda.
		factor := math.Sqrt(2*math.Pi) / lambda
		w := math.Pi * math.Pi / (8 * lambda * lambda)
		cdf := 0.0
		for j := 1; j <= 100; j++ {
			odd := float64(2*j - 1)
			term := math.Exp(-odd * odd * w)
			cdf += term
			if term < 1e-16 {
				break
			}
		}
		return 1 - factor*cdf
	}

	sum := 0.0
	sign := 1.0
	for j := 1; j <= 100; j++ {
		jf := float64(j)
		term := math.Exp(-2 * jf * jf * lambda * lambda)
		sum += sign * term
		if term < 1e-16 {
			break
		}
		sign = -sign
	}
	return 2 * sum
}

func clampProbability(p float64) float64 {
	if math.IsNaN(p) {
		return 1.0
	}
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
