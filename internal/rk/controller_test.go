package rk

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/odekit/odekit/internal/ode"
	"github.com/odekit/odekit/internal/tableau"
)

// exponential is y' = y with y(0) = 1, exact solution e^t.
func exponential(_ float64, y ode.Scalar) (ode.Scalar, error) {
	return y, nil
}

// heunEuler is a 2-stage embedded pair with no order information attached:
// B is Heun (order 2), B2 is Euler (order 1). Its local relative error on
// y'=y scales like dt^2/2, which makes controller behavior easy to predict.
func heunEuler(order int) tableau.Table {
	tb, err := tableau.NewEmbedded("heun-euler",
		[][]float64{{}, {1}},
		[]float64{0.5, 0.5},
		[]float64{1, 0},
		[]float64{0, 1},
		order,
	)
	if err != nil {
		panic(err)
	}
	return tb
}

var _ = Describe("Controller", func() {
	Describe("construction", func() {
		It("rejects tables without an embedded pair", func() {
			_, err := NewController(exponential, tableau.RK4(), 0, ode.Scalar(1), AdaptiveConfig{})
			Expect(err).To(MatchError(ErrNotEmbedded))
		})

		It("rejects malformed tables", func() {
			bad := tableau.Table{A: [][]float64{{1}}, B: []float64{1}, C: []float64{0}}
			_, err := NewController(exponential, bad, 0, ode.Scalar(1), AdaptiveConfig{})
			Expect(err).To(MatchError(tableau.ErrRowLength))
		})
	})

	Describe("with a loose tolerance", func() {
		It("accepts the first candidate and lands exactly on the output time", func() {
			ctrl, err := NewController(exponential, tableau.DoPri5(), 0, ode.Scalar(1), AdaptiveConfig{Tol: 1e-2})
			Expect(err).NotTo(HaveOccurred())

			y, err := ctrl.AdvanceTo(0.5)
			Expect(err).NotTo(HaveOccurred())

			Expect(ctrl.Time()).To(Equal(0.5))
			Expect(ctrl.Stats().Rejected).To(BeZero())
			Expect(ctrl.Stats().Accepted).To(Equal(1))
			Expect(float64(y)).To(BeNumerically("~", math.Exp(0.5), 1e-3))
		})

		It("carries the candidate step over to the next interval unreduced", func() {
			ctrl, err := NewController(exponential, tableau.DoPri5(), 0, ode.Scalar(1), AdaptiveConfig{Tol: 1e-2, InitialStep: 2})
			Expect(err).NotTo(HaveOccurred())

			_, err = ctrl.AdvanceTo(0.5)
			Expect(err).NotTo(HaveOccurred())
			Expect(ctrl.Stats().NextStep).To(Equal(2.0))

			_, err = ctrl.AdvanceTo(1.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(ctrl.Time()).To(Equal(1.0))
		})
	})

	Describe("with a tight tolerance", func() {
		It("rejects and shrinks before accepting", func() {
			ctrl, err := NewController(exponential, tableau.DoPri5(), 0, ode.Scalar(1), AdaptiveConfig{Tol: 1e-12, InitialStep: 1})
			Expect(err).NotTo(HaveOccurred())

			y, err := ctrl.AdvanceTo(1)
			Expect(err).NotTo(HaveOccurred())

			Expect(ctrl.Stats().Rejected).To(BeNumerically(">=", 1))
			Expect(ctrl.Stats().LastStep).To(BeNumerically("<", 1))
			Expect(ctrl.Time()).To(Equal(1.0))
			Expect(float64(y)).To(BeNumerically("~", math.E, 1e-9))
		})

		It("shrinks a rejected step by exactly the tolerance/error factor", func() {
			// For the heun-euler pair on y'=y the relative error at step dt
			// is (dt^2/2)/(1+dt+dt^2/2). At dt=1 that is 0.2, so with
			// Tol=0.1 and order 1 the rejected unit step must shrink by the
			// factor 0.1/0.2 to exactly 0.5 — which then passes. The rest
			// of the interval takes two more accepts, never a rejection.
			ctrl, err := NewController(exponential, heunEuler(1), 0, ode.Scalar(1), AdaptiveConfig{Tol: 0.1, InitialStep: 1})
			Expect(err).NotTo(HaveOccurred())

			_, err = ctrl.AdvanceTo(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(ctrl.Stats().Rejected).To(Equal(1))
			Expect(ctrl.Stats().Accepted).To(Equal(3))
		})
	})

	Describe("without order information", func() {
		It("halves the step on rejection and gives up after MaxRetries", func() {
			ctrl, err := NewController(exponential, heunEuler(0), 0, ode.Scalar(1), AdaptiveConfig{
				Tol:         1e-16,
				InitialStep: 1,
				MinStep:     1e-300,
				MaxRetries:  5,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = ctrl.AdvanceTo(1)
			Expect(errors.Is(err, ErrNonConvergence)).To(BeTrue())

			var cerr *ConvergenceError
			Expect(errors.As(err, &cerr)).To(BeTrue())
			Expect(cerr.Rejections).To(Equal(6))
			// Five halvings of the unit step before the sixth rejection.
			Expect(cerr.LastStep).To(BeNumerically("~", 1.0/32.0, 1e-12))
			Expect(cerr.ErrRatio).To(BeNumerically(">", 1e-16))
		})

		It("keeps the step unchanged after an intermediate accept", func() {
			// relErr ~ dt^2/2 = 0.03 at dt = 0.25, well under the tolerance,
			// so the interval is covered by exactly four equal sub-steps.
			ctrl, err := NewController(exponential, heunEuler(0), 0, ode.Scalar(1), AdaptiveConfig{
				Tol:         0.1,
				InitialStep: 0.25,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = ctrl.AdvanceTo(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(ctrl.Stats().Accepted).To(Equal(4))
			Expect(ctrl.Stats().Rejected).To(BeZero())
		})
	})

	Describe("termination bounds", func() {
		It("fails with a non-convergence error when the step hits MinStep", func() {
			ctrl, err := NewController(exponential, tableau.DoPri5(), 0, ode.Scalar(1), AdaptiveConfig{
				Tol:         1e-12,
				InitialStep: 1,
				MinStep:     0.9,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = ctrl.AdvanceTo(1)
			Expect(errors.Is(err, ErrNonConvergence)).To(BeTrue())

			var cerr *ConvergenceError
			Expect(errors.As(err, &cerr)).To(BeTrue())
			Expect(cerr.LastStep).To(Equal(1.0))
			Expect(cerr.Time).To(BeZero())
		})
	})

	Describe("degenerate error estimates", func() {
		It("accepts an exactly reproduced solution even at zero magnitude", func() {
			still := func(float64, ode.Scalar) (ode.Scalar, error) { return 0, nil }
			ctrl, err := NewController(still, tableau.DoPri5(), 0, ode.Scalar(0), AdaptiveConfig{Tol: 1e-12})
			Expect(err).NotTo(HaveOccurred())

			y, err := ctrl.AdvanceTo(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(y).To(Equal(ode.Scalar(0)))
			Expect(ctrl.Stats().Rejected).To(BeZero())
		})
	})

	Describe("derivative failures", func() {
		It("propagates them unmodified", func() {
			boom := errors.New("stiff region")
			failing := func(t float64, y ode.Scalar) (ode.Scalar, error) {
				if t > 0.25 {
					return 0, boom
				}
				return y, nil
			}
			ctrl, err := NewController(failing, tableau.DoPri5(), 0, ode.Scalar(1), AdaptiveConfig{Tol: 1e-6})
			Expect(err).NotTo(HaveOccurred())

			_, err = ctrl.AdvanceTo(1)
			Expect(errors.Is(err, boom)).To(BeTrue())
		})
	})

	Describe("monotonic time", func() {
		It("never steps past the requested output time", func() {
			ctrl, err := NewController(exponential, tableau.Fehlberg45(), 0, ode.Scalar(1), AdaptiveConfig{
				Tol:         1e-10,
				InitialStep: 0.3,
			})
			Expect(err).NotTo(HaveOccurred())

			prev := ctrl.Time()
			for _, tNext := range []float64{0.2, 0.5, 1.3} {
				_, err := ctrl.AdvanceTo(tNext)
				Expect(err).NotTo(HaveOccurred())
				Expect(ctrl.Time()).To(Equal(tNext))
				Expect(ctrl.Time()).To(BeNumerically(">", prev))
				prev = ctrl.Time()
			}
		})
	})
})
