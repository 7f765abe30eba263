package linkage_test

import (
	"math"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/quickreturn/internal/linkage"
)

var _ = Describe("Mechanism", func() {
	var m *linkage.Mechanism

	const theta2 = math.Pi / 6

	BeforeEach(func() {
		m = linkage.NewMechanism()
		Expect(m.SetLinks(0.025, 0.010, 0.065, 0.030, 0.040, math.Pi/2)).To(Succeed())
		Expect(m.SetAngularVelocity(-15.0)).To(Succeed())
		Expect(m.SetSampleCount(360)).To(Succeed())
	})

	Describe("configuration", func() {
		It("rejects non-positive lengths without touching the stored links", func() {
			before := m.Config()
			Expect(m.SetLinks(0.025, 0, 0.065, 0.030, 0.040, math.Pi/2)).To(MatchError(linkage.ErrInvalidGeometry))
			Expect(m.SetLinks(0.025, 0.010, -1, 0.030, 0.040, math.Pi/2)).To(MatchError(linkage.ErrInvalidGeometry))
			Expect(m.Config()).To(Equal(before))
		})

		It("rejects non-positive sample counts", func() {
			Expect(m.SetSampleCount(0)).To(MatchError(linkage.ErrInvalidArgument))
			Expect(m.SetSampleCount(-4)).To(MatchError(linkage.ErrInvalidArgument))
			Expect(m.Config().Samples).To(Equal(360))
		})

		It("rejects non-finite angular velocities", func() {
			Expect(m.SetAngularVelocity(math.NaN())).To(MatchError(linkage.ErrInvalidArgument))
			Expect(m.SetAngularVelocity(math.Inf(-1))).To(MatchError(linkage.ErrInvalidArgument))
			Expect(m.Config().Omega2).To(Equal(-15.0))
		})

		It("treats units as a label only", func() {
			before, err := m.SliderPosition(theta2)
			Expect(err).NotTo(HaveOccurred())
			m.SetUnits(linkage.USC)
			after, err := m.SliderPosition(theta2)
			Expect(err).NotTo(HaveOccurred())
			Expect(after).To(Equal(before))
			Expect(m.Config().Units).To(Equal(linkage.USC))
		})

		It("fails queries until links are set", func() {
			_, err := linkage.NewMechanism().SliderPosition(theta2)
			Expect(err).To(MatchError(linkage.ErrInvalidGeometry))
		})
	})

	Describe("reference solve", func() {
		It("reproduces the regression baseline", func() {
			x, err := m.SliderPosition(theta2)
			Expect(err).NotTo(HaveOccurred())
			Expect(x).To(BeNumerically("~", 0.03792746488570564, 1e-9))

			v, err := m.SliderVelocity(theta2)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(BeNumerically("~", 0.28657421142465567, 1e-9))

			th4, err := m.AngularPosition(theta2, linkage.Link4)
			Expect(err).NotTo(HaveOccurred())
			Expect(th4).To(BeNumerically("~", 1.289761425292083, 1e-9))

			th5, err := m.AngularPosition(theta2, linkage.Link5)
			Expect(err).NotTo(HaveOccurred())
			Expect(th5).To(BeNumerically("~", -0.8455448967469371, 1e-9))

			w4, err := m.AngularVelocity(theta2, linkage.Link4)
			Expect(err).NotTo(HaveOccurred())
			Expect(w4).To(BeNumerically("~", -3.4615384615384603, 1e-9))

			w5, err := m.AngularVelocity(theta2, linkage.Link5)
			Expect(err).NotTo(HaveOccurred())
			Expect(w5).To(BeNumerically("~", 3.135913877785768, 1e-9))
		})

		It("reports the driven crank and the block riding the rocker", func() {
			th2, err := m.AngularPosition(theta2, linkage.Link2)
			Expect(err).NotTo(HaveOccurred())
			Expect(th2).To(Equal(theta2))

			w2, err := m.AngularVelocity(theta2, linkage.Link2)
			Expect(err).NotTo(HaveOccurred())
			Expect(w2).To(Equal(-15.0))

			th3, _ := m.AngularPosition(theta2, linkage.Link3)
			th4, _ := m.AngularPosition(theta2, linkage.Link4)
			Expect(th3).To(Equal(th4))
		})

		It("rejects unmodeled links", func() {
			_, err := m.AngularPosition(theta2, linkage.Link1)
			Expect(err).To(MatchError(linkage.ErrUnknownLink))
			_, err = m.AngularVelocity(theta2, linkage.Link6)
			Expect(err).To(MatchError(linkage.ErrUnknownLink))
			_, err = m.PointPosition(theta2, linkage.Point(0))
			Expect(err).To(MatchError(linkage.ErrUnknownLink))
		})

		It("exposes the crank pin velocity", func() {
			va, err := m.PointVelocity(theta2, linkage.PointA)
			Expect(err).NotTo(HaveOccurred())
			Expect(math.Hypot(real(va), imag(va))).To(BeNumerically("~", 0.010*15.0, 1e-12))
		})
	})

	Describe("caching", func() {
		It("is idempotent across interleaved angles", func() {
			first, err := m.AngularPosition(theta2, linkage.Link5)
			Expect(err).NotTo(HaveOccurred())

			for _, other := range []float64{0.1, 2.0, -1.3} {
				_, err := m.SliderVelocity(other)
				Expect(err).NotTo(HaveOccurred())
				again, err := m.AngularPosition(theta2, linkage.Link5)
				Expect(err).NotTo(HaveOccurred())
				Expect(again).To(Equal(first))
			}
		})

		It("never serves data from a previous angle", func() {
			a, _ := m.SliderPosition(0.5)
			b, _ := m.SliderPosition(1.5)
			Expect(a).NotTo(Equal(b))

			fresh, err := linkage.Solve(m.Config().Geometry, 1.5, -15.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(b).To(Equal(fresh.R6))
		})

		It("recomputes after the configuration changes", func() {
			before, _ := m.SliderPosition(theta2)
			Expect(m.SetLinks(0.025, 0.010, 0.065, 0.032, 0.040, math.Pi/2)).To(Succeed())
			after, err := m.SliderPosition(theta2)
			Expect(err).NotTo(HaveOccurred())
			Expect(after).NotTo(Equal(before))

			vBefore, _ := m.SliderVelocity(theta2)
			Expect(m.SetAngularVelocity(-30)).To(Succeed())
			vAfter, _ := m.SliderVelocity(theta2)
			Expect(vAfter).To(BeNumerically("~", 2*vBefore, 1e-12))
		})

		It("keeps the last good entry when a solve fails", func() {
			good, err := m.SliderPosition(theta2)
			Expect(err).NotTo(HaveOccurred())

			_, err = m.SliderPosition(math.NaN())
			Expect(err).To(HaveOccurred())

			again, err := m.SliderPosition(theta2)
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(Equal(good))
		})

		It("serialises concurrent callers", func() {
			want := make(map[float64]float64)
			for i := 0; i < 8; i++ {
				angle := float64(i) * 0.7
				s, err := linkage.Solve(m.Config().Geometry, angle, -15.0)
				Expect(err).NotTo(HaveOccurred())
				want[angle] = s.R6Dot
			}

			var wg sync.WaitGroup
			errs := make(chan string, 800)
			for i := 0; i < 8; i++ {
				angle := float64(i) * 0.7
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 100; j++ {
						v, err := m.SliderVelocity(angle)
						if err != nil || v != want[angle] {
							errs <- "mismatch"
						}
					}
				}()
			}
			wg.Wait()
			close(errs)
			Expect(errs).To(BeEmpty())
		})
	})

	Describe("open linkage", func() {
		It("fails every query with an unreachable configuration", func() {
			Expect(m.SetLinks(0.025, 0.010, 0.065, 0.010, 0.040, math.Pi/2)).To(Succeed())
			for _, deg := range []float64{0, 30, 90, 180, 270} {
				_, err := m.SliderPosition(deg * math.Pi / 180)
				Expect(err).To(MatchError(linkage.ErrUnreachable))
			}
		})
	})
})
