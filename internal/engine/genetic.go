package engine

import (
	"math/rand"
	"sort"

	"github.com/piwi3910/BoxPack/internal/model"
)

// GeneticConfig holds parameters for the insertion-order search.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
	Seed           int64
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 40,
		Generations:    60,
		MutationRate:   0.2,
		TournamentSize: 3,
		EliteCount:     2,
		Seed:           42,
	}
}

// chromosome is an insertion order: a permutation of box indices.
type chromosome struct {
	order []int
	depth int
}

// geneticOptimizer searches for an insertion order that lets the placement
// engine reach a shallower depth than plain area sorting.
type geneticOptimizer struct {
	opt    *Optimizer
	config GeneticConfig
	boxes  []model.Box
	rng    *rand.Rand
}

func newGeneticOptimizer(opt *Optimizer, config GeneticConfig, boxes []model.Box) *geneticOptimizer {
	return &geneticOptimizer{
		opt:    opt,
		config: config,
		boxes:  boxes,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// maxGeneticBoxes bounds the search. Every chromosome is a full packing, so
// larger inputs fall back to the best area order.
const maxGeneticBoxes = 300

// packGenetic runs the search with a config scaled to the problem size.
func (o *Optimizer) packGenetic(boxes []model.Box) (model.PackResult, error) {
	if len(boxes) > maxGeneticBoxes {
		o.debugf("genetic order skipped for %d boxes (limit %d), using best area order", len(boxes), maxGeneticBoxes)
		return o.packBestOrder(boxes)
	}

	config := DefaultGeneticConfig()
	if len(boxes) > 20 {
		config.Generations = 100
	}
	if len(boxes) > 50 {
		config.Generations = 150
		config.PopulationSize = 60
	}
	return newGeneticOptimizer(o, config, boxes).optimize()
}

// optimize runs the genetic algorithm and returns the best packing found.
// The population is seeded with both area orders, and elitism keeps the
// best individual, so the result is never deeper than the best area order.
func (g *geneticOptimizer) optimize() (model.PackResult, error) {
	if len(g.boxes) == 0 {
		return g.decode(chromosome{})
	}

	population, err := g.initPopulation()
	if err != nil {
		return model.PackResult{}, err
	}

	for gen := 0; gen < g.config.Generations; gen++ {
		sortPopulation(population)

		newPop := make([]chromosome, 0, g.config.PopulationSize)

		eliteCount := g.config.EliteCount
		if eliteCount > len(population) {
			eliteCount = len(population)
		}
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, population[i].clone())
		}

		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)

			child := g.orderCrossover(parent1, parent2)
			g.mutate(&child)

			if err := g.evaluate(&child); err != nil {
				return model.PackResult{}, err
			}
			newPop = append(newPop, child)
		}

		population = newPop
	}

	sortPopulation(population)
	result, err := g.decode(population[0])
	if err != nil {
		return model.PackResult{}, err
	}
	result.Order = model.OrderGenetic
	return result, nil
}

// sortPopulation orders by depth ascending. The stable sort keeps the
// seeded area orders ahead of random individuals with the same depth.
func sortPopulation(population []chromosome) {
	sort.SliceStable(population, func(i, j int) bool {
		return population[i].depth < population[j].depth
	})
}

func (g *geneticOptimizer) initPopulation() ([]chromosome, error) {
	n := len(g.boxes)
	size := g.config.PopulationSize
	if size < 2 {
		size = 2
	}
	population := make([]chromosome, size)

	population[0] = g.areaChromosome(true)
	population[1] = g.areaChromosome(false)
	for i := 2; i < size; i++ {
		population[i] = chromosome{order: g.rng.Perm(n)}
	}

	for i := range population {
		if err := g.evaluate(&population[i]); err != nil {
			return nil, err
		}
	}
	return population, nil
}

// areaChromosome mirrors the plain driver: a stable sort by area.
func (g *geneticOptimizer) areaChromosome(descending bool) chromosome {
	order := make([]int, len(g.boxes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		ai, aj := g.boxes[order[i]].Area(), g.boxes[order[j]].Area()
		if descending {
			return ai > aj
		}
		return ai < aj
	})
	return chromosome{order: order}
}

func (g *geneticOptimizer) evaluate(c *chromosome) error {
	result, err := g.decode(*c)
	if err != nil {
		return err
	}
	c.depth = result.Depth
	return nil
}

// decode packs the boxes in chromosome order.
func (g *geneticOptimizer) decode(c chromosome) (model.PackResult, error) {
	ordered := make([]model.Box, len(c.order))
	for i, idx := range c.order {
		ordered[i] = g.boxes[idx]
	}
	quiet := &Optimizer{Settings: g.opt.Settings}
	return quiet.packOrdered(ordered, model.OrderGenetic)
}

// tournamentSelect picks the shallowest individual from a random tournament.
func (g *geneticOptimizer) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.Intn(len(population))]
		if candidate.depth < best.depth {
			best = candidate
		}
	}
	return best.clone()
}

// orderCrossover implements Order Crossover (OX1) for permutation chromosomes.
// It preserves the relative order of genes from both parents.
func (g *geneticOptimizer) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.order)
	if n <= 2 {
		return parent1.clone()
	}

	point1 := g.rng.Intn(n)
	point2 := g.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{order: make([]int, n)}

	inSegment := make(map[int]bool)
	for i := point1; i <= point2; i++ {
		child.order[i] = parent1.order[i]
		inSegment[parent1.order[i]] = true
	}

	childIdx := (point2 + 1) % n
	for _, idx := range parent2.order {
		if !inSegment[idx] {
			child.order[childIdx] = idx
			childIdx = (childIdx + 1) % n
		}
	}

	return child
}

// mutate applies swap and inversion mutations.
func (g *geneticOptimizer) mutate(c *chromosome) {
	n := len(c.order)
	if n < 2 {
		return
	}

	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		c.order[i], c.order[j] = c.order[j], c.order[i]
	}

	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.order[i], c.order[j] = c.order[j], c.order[i]
			i++
			j--
		}
	}
}

func (c chromosome) clone() chromosome {
	order := make([]int, len(c.order))
	copy(order, c.order)
	return chromosome{order: order, depth: c.depth}
}
