package montecarlo

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/katalvlaran/cdt3d/mesh"
)

// Sentinel errors for simulation construction.
var (
	// ErrNilUniverse indicates a nil universe was supplied.
	ErrNilUniverse = errors.New("montecarlo: universe is required")

	// ErrBadFrequencies indicates non-positive move frequencies.
	ErrBadFrequencies = errors.New("montecarlo: move frequencies must be positive")

	// ErrBadTarget indicates a negative volume target.
	ErrBadTarget = errors.New("montecarlo: volume target must be non-negative")
)

// Move identifies the outcome of one attempt.
type Move int

const (
	// MoveNone: the attempt was rejected, by the acceptance test or by
	// combinatorial legality.
	MoveNone Move = iota
	// MoveAdd: an expansion was committed.
	MoveAdd
	// MoveDelete: a contraction was committed.
	MoveDelete
	// MoveFlip: an edge flip was committed.
	MoveFlip
	// MoveShift: an upward or downward shift was committed.
	MoveShift
	// MoveInverseShift: an inverse shift was committed.
	MoveInverseShift
)

// MoveStats counts attempt outcomes, indexed by Move.
type MoveStats [6]int

// Accepted returns the number of committed moves.
func (m MoveStats) Accepted() int {
	n := 0
	for _, c := range m[MoveAdd:] {
		n += c
	}
	return n
}

// Observable is measured against the universe on a sweep schedule.
// Slice observables registered via Register2D run after a Reconstruct;
// bulk observables via Register3D must rely on counters only.
type Observable interface {
	Name() string
	Measure(u *mesh.Universe) error
}

// driftCap bounds the volume-fixing loops; a target that cannot be hit
// (wrong parity, hostile couplings) stalls the run instead of hanging it.
const driftCap = 10_000_000

// Simulation is one Metropolis driver bound to one universe.
type Simulation struct {
	u   *mesh.Universe
	rng *rand.Rand
	log *slog.Logger

	k0, k3  float64
	epsilon float64

	targetVolume  int // total tetrahedra; 0 disables volume fixing
	target2Volume int // (3,1) tetrahedra in a slice; 0 disables

	moveFreqs   [3]int
	exportEvery int
	exporter    func(*mesh.Universe) error

	obs3d []Observable
	obs2d []Observable
}

// Option customizes a Simulation.
type Option func(*Simulation) error

// WithRand overrides the generator; the default is the universe's own.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulation) error {
		if rng == nil {
			return errors.New("montecarlo: rng must not be nil")
		}
		s.rng = rng
		return nil
	}
}

// WithLogger routes progress logging; the default is slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(s *Simulation) error {
		if log == nil {
			return errors.New("montecarlo: logger must not be nil")
		}
		s.log = log
		return nil
	}
}

// WithEpsilon sets the volume-fixing strength.
func WithEpsilon(eps float64) Option {
	return func(s *Simulation) error {
		if eps <= 0 {
			return fmt.Errorf("montecarlo: epsilon must be positive, got %g", eps)
		}
		s.epsilon = eps
		return nil
	}
}

// WithTargetVolume fixes the total tetrahedron count near target.
func WithTargetVolume(target int) Option {
	return func(s *Simulation) error {
		if target < 0 {
			return fmt.Errorf("%w: %d", ErrBadTarget, target)
		}
		s.targetVolume = target
		return nil
	}
}

// WithSliceTargetVolume gates slice observables on one slice reaching
// target (3,1) tetrahedra.
func WithSliceTargetVolume(target int) Option {
	return func(s *Simulation) error {
		if target < 0 {
			return fmt.Errorf("%w: %d", ErrBadTarget, target)
		}
		s.target2Volume = target
		return nil
	}
}

// WithMoveFrequencies sets the relative weights of the grow/shrink, flip
// and shift families.
func WithMoveFrequencies(addDelete, flip, shift int) Option {
	return func(s *Simulation) error {
		if addDelete < 1 || flip < 1 || shift < 1 {
			return fmt.Errorf("%w: (%d %d %d)", ErrBadFrequencies, addDelete, flip, shift)
		}
		s.moveFreqs = [3]int{addDelete, flip, shift}
		return nil
	}
}

// WithExporter registers a snapshot sink invoked every n sweeps.
func WithExporter(n int, fn func(*mesh.Universe) error) Option {
	return func(s *Simulation) error {
		if n < 1 || fn == nil {
			return errors.New("montecarlo: exporter needs a positive interval and a sink")
		}
		s.exportEvery = n
		s.exporter = fn
		return nil
	}
}

// New binds a driver to u with bare couplings k0 and k3.
func New(u *mesh.Universe, k0, k3 float64, opts ...Option) (*Simulation, error) {
	if u == nil {
		return nil, ErrNilUniverse
	}
	s := &Simulation{
		u:           u,
		rng:         u.Rand(),
		log:         slog.Default(),
		k0:          k0,
		k3:          k3,
		epsilon:     0.02,
		moveFreqs:   [3]int{4, 1, 10},
		exportEvery: 10,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// K3 returns the current tetrahedron coupling, which moves under tuning.
func (s *Simulation) K3() float64 { return s.k3 }

// Epsilon returns the volume-fixing strength.
func (s *Simulation) Epsilon() float64 { return s.epsilon }

// Register3D adds a bulk observable, measured every measurement sweep.
func (s *Simulation) Register3D(o Observable) { s.obs3d = append(s.obs3d, o) }

// Register2D adds a slice observable, measured after geometry
// reconstruction (and, when a slice target is set, at the volume hit).
func (s *Simulation) Register2D(o Observable) { s.obs2d = append(s.obs2d, o) }

func (s *Simulation) accept(ar float64) bool {
	return ar >= 1 || s.rng.Float64() < ar
}

// volumeFactor biases acceptance toward the volume target: exp(scale*eps)
// below the target, exp(-scale*eps) above it. scale is the tetrahedron
// count change of the move: +4/-4 for grow/shrink, +1/-1 for the shifts.
func (s *Simulation) volumeFactor(scale float64) float64 {
	if s.targetVolume <= 0 {
		return 1
	}
	if s.u.TetraCount() < s.targetVolume {
		return math.Exp(scale * s.epsilon)
	}
	return math.Exp(-scale * s.epsilon)
}

// AttemptMove performs one Metropolis step: draw a move family and
// direction, test acceptance, then attempt the surgery.
func (s *Simulation) AttemptMove() Move {
	cum0 := s.moveFreqs[0]
	cum1 := cum0 + s.moveFreqs[1]
	total := cum1 + s.moveFreqs[2]

	family := s.rng.Intn(total)
	direction := s.rng.Intn(2)
	switch {
	case family < cum0:
		if direction == 0 {
			if s.moveAdd() {
				return MoveAdd
			}
		} else if s.moveDelete() {
			return MoveDelete
		}
	case family < cum1:
		if s.moveFlip() {
			return MoveFlip
		}
	default:
		vertical := s.rng.Intn(2)
		if direction == 0 {
			committed := false
			if vertical == 0 {
				committed = s.moveShiftUp()
			} else {
				committed = s.moveShiftDown()
			}
			if committed {
				return MoveShift
			}
		} else {
			committed := false
			if vertical == 0 {
				committed = s.moveInverseShiftUp()
			} else {
				committed = s.moveInverseShiftDown()
			}
			if committed {
				return MoveInverseShift
			}
		}
	}
	return MoveNone
}

func (s *Simulation) moveAdd() bool {
	n31 := float64(s.u.Tetra31Count())
	ar := n31 / (n31 + 2.0) * math.Exp(s.k0-4*s.k3) * s.volumeFactor(4)
	if !s.accept(ar) {
		return false
	}
	return s.u.Expand(s.u.PickTetra31())
}

func (s *Simulation) moveDelete() bool {
	n31 := s.u.Tetra31Count()
	if n31 <= 2 {
		return false
	}
	ar := float64(n31) / float64(n31-2) * math.Exp(-s.k0+4*s.k3) * s.volumeFactor(-4)
	if !s.accept(ar) {
		return false
	}
	return s.u.Contract(s.u.PickVertex())
}

func (s *Simulation) moveFlip() bool {
	t := s.u.PickTetra31()
	tn := s.u.Tetra(t).Neighbors()[s.rng.Intn(3)]
	return s.u.Flip(t, tn)
}

func (s *Simulation) moveShiftUp() bool {
	if !s.accept(math.Exp(-s.k3) * s.volumeFactor(1)) {
		return false
	}
	t := s.u.PickTetra31()
	tn := s.u.Tetra(t).Neighbors()[s.rng.Intn(3)]
	return s.u.ShiftUp(t, tn)
}

func (s *Simulation) moveShiftDown() bool {
	if !s.accept(math.Exp(-s.k3) * s.volumeFactor(1)) {
		return false
	}
	tv := s.u.Tetra(s.u.PickTetra31()).Neighbors()[3]
	tn := s.u.Tetra(tv).Neighbors()[1+s.rng.Intn(3)]
	return s.u.ShiftDown(tv, tn)
}

func (s *Simulation) moveInverseShiftUp() bool {
	if !s.accept(math.Exp(s.k3) * s.volumeFactor(-1)) {
		return false
	}
	t := s.u.PickTetra31()
	nbr := s.u.Tetra(t).Neighbors()
	n := s.rng.Intn(3)
	return s.u.InverseShiftUp(t, nbr[n], nbr[(n+2)%3])
}

func (s *Simulation) moveInverseShiftDown() bool {
	if !s.accept(math.Exp(s.k3) * s.volumeFactor(-1)) {
		return false
	}
	tv := s.u.Tetra(s.u.PickTetra31()).Neighbors()[3]
	nbr := s.u.Tetra(tv).Neighbors()
	n := s.rng.Intn(3)
	return s.u.InverseShiftDown(tv, nbr[1+n], nbr[1+(n+2)%3])
}

// Sweep performs attempts Metropolis steps and tallies the outcomes.
func (s *Simulation) Sweep(attempts int) MoveStats {
	var stats MoveStats
	for i := 0; i < attempts; i++ {
		stats[s.AttemptMove()]++
	}
	return stats
}

// tune nudges k3 toward the coupling that sustains the volume target,
// with a step that shrinks as the volume closes in.
func (s *Simulation) tune() {
	if s.targetVolume <= 0 {
		return
	}
	const step = 0.00001
	target := float64(s.targetVolume)
	diff := float64(s.u.TetraCount()) - target
	switch {
	case diff < -0.5*target:
		s.k3 -= step * 100 * 100
	case diff < -0.05*target:
		s.k3 -= step * 100
	case diff < -0.001*target:
		s.k3 -= step * 10
	case diff > 0.5*target:
		s.k3 += step * 100 * 100
	case diff > 0.05*target:
		s.k3 += step * 100
	case diff > 0.001*target:
		s.k3 += step * 10
	}
}

// driftToVolume attempts moves until the tetrahedron count hits the
// target.
func (s *Simulation) driftToVolume() {
	for i := 0; i < driftCap; i++ {
		if s.u.TetraCount() == s.targetVolume {
			return
		}
		s.AttemptMove()
	}
	s.log.Warn("volume drift cap reached",
		"target", s.targetVolume, "n3", s.u.TetraCount())
}

// driftToSliceVolume attempts moves until some slice hits the 2d target.
func (s *Simulation) driftToSliceVolume() {
	for i := 0; i < driftCap; i++ {
		for _, n := range s.u.SliceSizes() {
			if n == s.target2Volume {
				return
			}
		}
		s.AttemptMove()
	}
	s.log.Warn("slice volume drift cap reached", "target", s.target2Volume)
}

// Run executes thermal tuning sweeps followed by measure measurement
// sweeps of kSteps*1000 attempts each, measuring registered observables
// and exporting snapshots on schedule. It returns the first observable or
// exporter error.
func (s *Simulation) Run(thermal, measure, kSteps int) error {
	attempts := kSteps * 1000

	for i := 1; i <= thermal; i++ {
		stats := s.Sweep(attempts)
		s.tune()
		s.log.Info("thermal sweep",
			"sweep", i, "of", thermal,
			"n31", s.u.Tetra31Count(), "n3", s.u.TetraCount(),
			"k3", s.k3, "accepted", stats.Accepted())
		if err := s.maybeExport(i); err != nil {
			return err
		}
	}

	for i := 1; i <= measure; i++ {
		stats := s.Sweep(attempts)
		if s.targetVolume > 0 {
			s.driftToVolume()
		}
		s.log.Info("measurement sweep",
			"sweep", i, "of", measure,
			"n31", s.u.Tetra31Count(), "n3", s.u.TetraCount(),
			"accepted", stats.Accepted())

		for _, o := range s.obs3d {
			if err := o.Measure(s.u); err != nil {
				return fmt.Errorf("montecarlo: observable %s: %w", o.Name(), err)
			}
		}
		if len(s.obs2d) > 0 {
			if s.target2Volume > 0 {
				s.driftToSliceVolume()
			}
			s.u.Reconstruct()
			for _, o := range s.obs2d {
				if err := o.Measure(s.u); err != nil {
					return fmt.Errorf("montecarlo: observable %s: %w", o.Name(), err)
				}
			}
		}
		if err := s.maybeExport(i); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulation) maybeExport(sweep int) error {
	if s.exporter == nil || sweep%s.exportEvery != 0 {
		return nil
	}
	if err := s.exporter(s.u); err != nil {
		return fmt.Errorf("montecarlo: export: %w", err)
	}
	return nil
}
