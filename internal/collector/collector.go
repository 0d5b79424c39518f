package collector

import (
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ashander/ftprime"
)

// Collector parses the recombination-collector wire format a forward
// simulator emits -- "<offspring> <parent> <ploidy> <locus...>" lines
// arriving in maternal/paternal pairs -- and drives an
// ftprime.Recorder from it. It is the Go counterpart of
// original_source/ftprime/recomb_collector.py's RecombCollector,
// adapted away from that file's simuPOP-specific individual/ploidy
// labeling helpers towards a self-contained chromosome-id scheme.
type Collector struct {
	cfg      Config
	recorder *ftprime.Recorder
	rng      *rand.Rand

	universalAncestor int
	lastChild         int
}

// New constructs a Collector, registers the universal ancestor, and
// registers and records the first generation's descent from it, the
// Go equivalent of RecombCollector.__init__.
func New(cfg Config, recorder *ftprime.Recorder, rng *rand.Rand) (*Collector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Collector{
		cfg:               cfg,
		recorder:          recorder,
		rng:               rng,
		universalAncestor: 2 * cfg.NumSamples,
		lastChild:         -1,
	}

	if _, err := recorder.AddIndividual(c.universalAncestor, 0, ftprime.NullPopulation, 0); err != nil {
		return nil, errors.Wrap(err, "collector: add universal ancestor")
	}

	firstGen := make([]int, 0, 2*cfg.PopulationSize)
	for k := 1; k <= cfg.PopulationSize; k++ {
		for p := 0; p < 2; p++ {
			id := c.i2c(k, p)
			firstGen = append(firstGen, id)
			if _, err := recorder.AddIndividual(id, c.indToTime(k), ftprime.NullPopulation, 0); err != nil {
				return nil, errors.Wrapf(err, "collector: add first generation chromosome %d", id)
			}
		}
	}
	if err := recorder.AddRecord(0.0, cfg.Length, c.universalAncestor, firstGen); err != nil {
		return nil, errors.Wrap(err, "collector: record first generation")
	}
	return c, nil
}

// indToTime maps an individual ID to its forward-time generation,
// exploiting a non-overlapping-generations simulator's property that
// individual IDs are assigned in generation order: forward time
// increases with generation number, so the universal ancestor (time 0)
// is always the oldest and the final generation always the youngest,
// matching the ascending-forward-time convention the recorder's time
// reconciler assumes. This departs from
// original_source/ftprime/recomb_collector.py's ind_to_time, whose
// descending formula would hand the recorder a universal ancestor
// younger than its own descendants.
func (c *Collector) indToTime(k int) float64 {
	generation := 1 + int(math.Floor(float64(k-1)/float64(c.cfg.PopulationSize)))
	return float64(c.cfg.AncestorAge + generation)
}

// i2c maps an (individual, ploidy) pair to a chromosome input ID,
// offset past the universal ancestor's id.
func (c *Collector) i2c(k, ploidy int) int {
	return 1 + 2*c.cfg.NumSamples + 2*(k-1) + ploidy
}

// CollectRecombs parses a batch of wire-format lines and records the
// recombinant chromosomes they describe. Degenerate locus indices
// that run past the end of the locus table are silently ignored
// (SPEC_FULL.md section 4.1).
func (c *Collector) CollectRecombs(lines string) error {
	for _, line := range strings.Split(strings.TrimSpace(lines), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := c.collectLine(line); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) collectLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return errors.Errorf("collector: malformed wire line %q", line)
	}
	vals := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return errors.Wrapf(err, "collector: parsing wire line %q", line)
		}
		vals[i] = v
	}
	child, parent, ploid := vals[0], vals[1], vals[2]
	rec := vals[3:]

	var childPloid int
	if child == c.lastChild {
		childPloid = 1
	} else {
		childPloid = 0
		c.lastChild = child
	}

	childTime := c.indToTime(child)
	parentTime := c.indToTime(parent)
	if childTime <= parentTime {
		return errors.Errorf("collector: child %d at time %g does not come after parent %d at time %g",
			child, childTime, parent, parentTime)
	}

	childChrom := c.i2c(child, childPloid)
	if _, err := c.recorder.AddIndividual(childChrom, childTime, ftprime.NullPopulation, 0); err != nil {
		return errors.Wrapf(err, "collector: add child chromosome %d", childChrom)
	}

	start := 0.0
	activePloid := ploid
	for _, locus := range rec {
		if locus < 0 || locus+1 >= len(c.cfg.LocusPosition) {
			continue
		}
		lo, hi := c.cfg.LocusPosition[locus], c.cfg.LocusPosition[locus+1]
		breakpoint := lo + c.rng.Float64()*(hi-lo)
		parentChrom := c.i2c(parent, activePloid)
		if err := c.recorder.AddRecord(start, breakpoint, parentChrom, []int{childChrom}); err != nil {
			return errors.Wrapf(err, "collector: record breakpoint at locus %d", locus)
		}
		start = breakpoint
		activePloid = (activePloid + 1) % 2
	}
	parentChrom := c.i2c(parent, activePloid)
	if err := c.recorder.AddRecord(start, c.cfg.Length, parentChrom, []int{childChrom}); err != nil {
		return errors.Wrap(err, "collector: record tail segment")
	}
	return nil
}

// AddSamples picks NumSamples individuals at random from the final
// generation and marks both of their chromosomes as samples, the Go
// equivalent of RecombCollector.add_samples.
func (c *Collector) AddSamples() error {
	popStart := 1 + c.cfg.Generations*c.cfg.PopulationSize
	popEnd := 1 + (1+c.cfg.Generations)*c.cfg.PopulationSize
	pool := make([]int, 0, popEnd-popStart)
	for k := popStart; k < popEnd; k++ {
		pool = append(pool, k)
	}
	c.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if c.cfg.NumSamples > len(pool) {
		return errors.Errorf("collector: requested %d samples from a pool of %d", c.cfg.NumSamples, len(pool))
	}
	chosen := pool[:c.cfg.NumSamples]

	sampleChroms := make([]int, 0, 2*len(chosen))
	for _, k := range chosen {
		sampleChroms = append(sampleChroms, c.i2c(k, 0), c.i2c(k, 1))
	}
	return c.recorder.MarkSamples(sampleChroms)
}
