package pipeline

import (
	"sort"

	"go.uber.org/zap"

	"github.com/msfrag/fragid/decomp"
	"github.com/msfrag/fragid/fgraph"
	"github.com/msfrag/fragid/formula"
	"github.com/msfrag/fragid/ioniz"
	"github.com/msfrag/fragid/isotope"
	"github.com/msfrag/fragid/logging"
	"github.com/msfrag/fragid/preprocess"
	"github.com/msfrag/fragid/profile"
	"github.com/msfrag/fragid/spectrum"
	"github.com/msfrag/fragid/subtree"
)

// sufficiencyVertexFloor and sufficiencyIntensityFloor are the §4.7.1
// step 6e acceptance thresholds for the adaptive tree-size loop.
const (
	sufficiencyVertexFloor    = 15
	sufficiencyIntensityFloor = 0.70
)

// Identify runs the full identification pipeline for exp: MS1-derived
// precursor resolution (when exp.IonMass is unset), isotope-pattern
// candidate filtering, the adaptive tree-size search loop, optional
// recalibration, and final ranking.
func Identify(exp spectrum.Ms2Experiment, base profile.MeasurementProfile, ionType ioniz.PrecursorIonType, opts Options) ([]IdentificationResult, error) {
	log := logging.OrNop(opts.Logger)
	log.Infow("identify: starting", "experiment_id", exp.ID)

	if err := exp.Validate(); err != nil {
		return nil, stageErr("validate", err)
	}
	prof := exp.EffectiveProfile(base)

	ionMass, err := resolvePrecursorMass(exp, prof, ionType)
	if err != nil {
		return nil, stageErr("resolve-precursor", err)
	}
	exp.IonMass = ionMass

	isoFormulas, bestIsoScore := analyzeIsotopes(exp, prof, ionType)

	candidates, maxCandidates, err := candidateFormulas(exp, prof, ionType, isoFormulas, bestIsoScore, opts.WhiteList)
	if err != nil {
		return nil, stageErr("candidates", err)
	}

	outputSize := opts.K
	if maxCandidates < outputSize {
		outputSize = maxCandidates
	}
	computeN := 5
	if outputSize > computeN {
		computeN = outputSize
	}
	if computeN < len(candidates) {
		candidates = candidates[:computeN]
	}

	ranked, finalScore, err := adaptiveSearch(exp, prof, ionType, candidates, isoFormulas, outputSize, log)
	if err != nil {
		return nil, stageErr("search", err)
	}

	if opts.Recalibrating {
		ranked = recalibrateAll(exp, prof.WithTreeSizeScore(finalScore), ionType, ranked, isoFormulas)
		log.Infow("identify: recalibration applied", "experiment_id", exp.ID, "candidates", len(ranked))
	}

	log.Infow("identify: finished", "experiment_id", exp.ID, "candidates", len(ranked))

	return finalize(ranked, outputSize), nil
}

// Compute runs the same adaptive tree-size loop as Identify but seeks
// only target's optimal tree, returning a single result (rank 0 with a
// zero-value Tree when no tree could be computed for target).
func Compute(exp spectrum.Ms2Experiment, base profile.MeasurementProfile, ionType ioniz.PrecursorIonType, target formula.MolecularFormula, recalibrating bool) (IdentificationResult, error) {
	log := logging.NewNop()
	if err := exp.Validate(); err != nil {
		return IdentificationResult{}, stageErr("validate", err)
	}
	prof := exp.EffectiveProfile(base)
	ionMass, err := resolvePrecursorMass(exp, prof, ionType)
	if err != nil {
		return IdentificationResult{}, stageErr("resolve-precursor", err)
	}
	exp.IonMass = ionMass

	ranked, finalScore, err := adaptiveSearch(exp, prof, ionType, []formula.MolecularFormula{target}, nil, 1, log)
	if err != nil {
		return IdentificationResult{}, stageErr("search", err)
	}
	if len(ranked) == 0 {
		return IdentificationResult{Rank: 0, Formula: target}, nil
	}
	if recalibrating {
		ranked = recalibrateAll(exp, prof.WithTreeSizeScore(finalScore), ionType, ranked, nil)
	}
	out := finalize(ranked, 1)

	return out[0], nil
}

// IdentifyPrecursorAndIonization iterates every known ion mode for
// exp's charge, re-preprocessing and re-searching under each, and
// collects all trees into one bounded best-set ordered by score across
// ion modes. whiteList is not accepted, per §4.7.2.
func IdentifyPrecursorAndIonization(exp spectrum.Ms2Experiment, base profile.MeasurementProfile, charge int, opts Options) ([]IdentificationResult, error) {
	modes := ioniz.KnownIonModes(charge)
	var all []IdentificationResult
	for _, mode := range modes {
		ionType := ioniz.FromIonization(mode)
		results, err := Identify(exp, base, ionType, Options{K: opts.K, Recalibrating: opts.Recalibrating})
		if err != nil {
			continue
		}
		all = append(all, results...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}

		if fi, fj := all[i].Formula.String(), all[j].Formula.String(); fi != fj {
			return fi < fj
		}

		return all[i].IonType.String() < all[j].IonType.String()
	})
	if len(all) > opts.K {
		all = all[:opts.K]
	}
	for i := range all {
		all[i].Rank = i + 1
	}

	return all, nil
}

// resolvePrecursorMass returns exp.IonMass unchanged if already set,
// otherwise derives it from a unique positive-scoring MS1 isotope
// pattern anchored at the base peak.
func resolvePrecursorMass(exp spectrum.Ms2Experiment, prof profile.MeasurementProfile, ionType ioniz.PrecursorIonType) (float64, error) {
	if exp.IonMass != 0 {
		return exp.IonMass, nil
	}
	if exp.MS1 == nil {
		return 0, spectrum.ErrMissingPrecursor
	}

	anchor := exp.MS1.BasePeakIntensity()
	var anchorMZ float64
	for _, p := range exp.MS1.Peaks {
		if p.Intensity == anchor {
			anchorMZ = p.MZ

			break
		}
	}

	monoCandidates := isotope.Extract(*exp.MS1, anchorMZ, prof.MS1Deviation())
	patterns, err := isotope.Score(*exp.MS1, monoCandidates, ionType.IonToNeutralMass, ionType.NeutralToIonMass, prof.MS1Deviation(), prof.Constraints())
	if err != nil {
		return 0, err
	}

	var positive []isotope.Pattern
	for _, p := range patterns {
		if p.BestScore > 0 {
			positive = append(positive, p)
		}
	}
	if len(positive) != 1 {
		return 0, ErrAmbiguousPrecursor
	}

	return positive[0].MonoisotopicMass, nil
}

// analyzeIsotopes runs MS1 isotope analysis around exp.IonMass,
// returning the filtered formula->score map and the best score, or a nil
// map when MS1 is absent or isotope handling is disabled.
func analyzeIsotopes(exp spectrum.Ms2Experiment, prof profile.MeasurementProfile, ionType ioniz.PrecursorIonType) (map[string]float64, float64) {
	if exp.MS1 == nil || prof.IsotopeHandling() == profile.IsotopeOmit {
		return nil, 0
	}

	monoCandidates := isotope.Extract(*exp.MS1, exp.IonMass, prof.MS1Deviation())
	patterns, err := isotope.Score(*exp.MS1, monoCandidates, ionType.IonToNeutralMass, ionType.NeutralToIonMass, prof.MS1Deviation(), prof.Constraints())
	if err != nil {
		return nil, 0
	}

	return isotope.Filter(patterns)
}

// candidateFormulas determines the neutral-formula search space per
// §4.7.1 step 3: isotope-filtered formulas when confident (bestScore >
// 10 and non-empty), else every parent-peak decomposition; intersected
// with whiteList when non-empty.
func candidateFormulas(
	exp spectrum.Ms2Experiment,
	prof profile.MeasurementProfile,
	ionType ioniz.PrecursorIonType,
	isoFormulas map[string]float64,
	bestIsoScore float64,
	whiteList []formula.MolecularFormula,
) ([]formula.MolecularFormula, int, error) {
	var candidates []formula.MolecularFormula

	if len(isoFormulas) > 0 && bestIsoScore > 10 {
		for s := range isoFormulas {
			f, err := formula.Parse(s)
			if err != nil {
				continue
			}
			candidates = append(candidates, f)
		}
	} else {
		neutralMass := ionType.IonToNeutralMass(exp.IonMass)
		formulas, err := decomp.Decompose(neutralMass, prof.MS1Deviation(), prof.Constraints())
		if err != nil {
			return nil, 0, err
		}
		candidates = formulas
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].String() < candidates[j].String() })

	if len(whiteList) > 0 {
		filtered := candidates[:0]
		for _, c := range candidates {
			if whiteListContains(whiteList, c) {
				filtered = append(filtered, c)
			}
		}
		candidates = filtered
	}

	return candidates, len(candidates), nil
}

// rankedCandidate bundles a scored candidateResult with the metrics the
// sufficiency test and final output need.
type rankedCandidate struct {
	candidateResult
	score                   float64
	explainedIntensityRatio float64
	recalibrated            bool
}

// candidateGraph pairs a candidate formula with its cached DAG topology,
// built once per identify call and retuned (never rebuilt) across
// tree-size bumps.
type candidateGraph struct {
	formula formula.MolecularFormula
	graph   *fgraph.Graph
	ok      bool // false when Build failed for this candidate
}

// adaptiveSearch implements §4.7.1 steps 5-6: it increases the
// TreeSizeScorer bias by 1.0 per iteration (up to MaxTreeSizeIncrease
// above the profile's starting value) until the top candidate's tree has
// at least sufficiencyVertexFloor vertices or explains at least
// sufficiencyIntensityFloor of the total MS2 intensity, or the cap is
// reached.
//
// Preprocessing (peak merge + decomposition) and each candidate's DAG
// topology depend only on exp/ionType/prof's deviations and constraints,
// never on TreeSizeScore, so both run exactly once; only the TreeSizeScorer
// contribution baked into each cached graph's edge weights is retuned
// between iterations, via fgraph.Graph.AdjustEdgeWeights.
func adaptiveSearch(
	exp spectrum.Ms2Experiment,
	prof profile.MeasurementProfile,
	ionType ioniz.PrecursorIonType,
	candidates []formula.MolecularFormula,
	isoFormulas map[string]float64,
	outputSize int,
	log *zap.SugaredLogger,
) ([]rankedCandidate, float64, error) {
	if len(candidates) == 0 {
		return nil, 0, ErrNoCandidates
	}

	s0 := prof.TreeSizeScore()
	sMax := s0 + profile.MaxTreeSizeIncrease
	s := s0

	processed, err := preprocess.Process(exp, ionType, prof)
	if err != nil {
		return nil, 0, err
	}
	totalIntensity := totalPeakIntensity(processed)

	graphs := runPool(prof.Parallelism(), candidates, func(f formula.MolecularFormula) candidateGraph {
		return buildCandidateGraph(processed, f, fgraph.DefaultScorerSet(s0))
	})

	var ranked []rankedCandidate
	for iteration := 0; ; iteration++ {
		if iteration > 0 {
			for _, cg := range graphs {
				if cg.ok {
					cg.graph.AdjustEdgeWeights(1.0)
				}
			}
		}

		results := runPool(prof.Parallelism(), graphs, func(cg candidateGraph) candidateResult {
			return solveCandidate(cg, ionType)
		})
		solved := make([]candidateResult, 0, len(results))
		for _, r := range results {
			if r.optimal {
				solved = append(solved, r)
			}
		}

		ranked = rankCandidates(solved, isoFormulas, prof.IsotopeHandling(), totalIntensity)
		if outputSize > 0 && len(ranked) > outputSize {
			ranked = ranked[:outputSize]
		}

		sufficient := s >= sMax
		if !sufficient && len(ranked) > 0 {
			top := ranked[0]
			if len(top.tree.Nodes) >= sufficiencyVertexFloor || top.explainedIntensityRatio >= sufficiencyIntensityFloor {
				sufficient = true
			}
		}
		log.Debugw("identify: adaptive search iteration",
			"iteration", iteration, "tree_size_score", s, "sufficient", sufficient, "candidates", len(ranked))
		if sufficient {
			break
		}
		s += 1.0
	}

	return ranked, s, nil
}

// buildCandidateGraph builds f's fragmentation DAG from processed once;
// the returned graph is reused and retuned across adaptive-loop iterations.
func buildCandidateGraph(processed preprocess.ProcessedInput, f formula.MolecularFormula, scorers fgraph.ScorerSet) candidateGraph {
	narrowed := processed.ForPrecursor(f)
	g, err := fgraph.Build(narrowed, f, scorers)
	if err != nil {
		return candidateGraph{formula: f, ok: false}
	}

	return candidateGraph{formula: f, graph: g, ok: true}
}

// searchCandidate builds f's fragmentation DAG from processed and
// immediately extracts its optimal colorful subtree, for one-off callers
// (recalibration) that do not iterate a tree-size loop and so have no use
// for a cached, retunable graph.
func searchCandidate(processed preprocess.ProcessedInput, f formula.MolecularFormula, ionType ioniz.PrecursorIonType, scorers fgraph.ScorerSet) candidateResult {
	return solveCandidate(buildCandidateGraph(processed, f, scorers), ionType)
}

// solveCandidate extracts cg's optimal colorful subtree under its current
// (possibly retuned) edge weights.
func solveCandidate(cg candidateGraph, ionType ioniz.PrecursorIonType) candidateResult {
	if !cg.ok {
		return candidateResult{formula: cg.formula, ionType: ionType, tree: subtree.FTree{Root: fgraph.RootID}}
	}

	tree, err := subtree.OptimalTree(cg.graph, subtree.DefaultSearchOptions())
	if err != nil {
		return candidateResult{formula: cg.formula, ionType: ionType, tree: subtree.FTree{Root: fgraph.RootID}}
	}

	return candidateResult{formula: cg.formula, ionType: ionType, tree: tree, optimal: true}
}

// rankCandidates scores each candidate (tree weight, plus isotope score
// when isoMode is score), computes its explained-intensity ratio, and
// sorts descending by score then ascending by canonical formula string.
func rankCandidates(results []candidateResult, isoFormulas map[string]float64, isoMode profile.IsotopeHandling, totalIntensity float64) []rankedCandidate {
	out := make([]rankedCandidate, 0, len(results))
	for _, r := range results {
		score := r.tree.Weight
		var isoScore float64
		if isoMode == profile.IsotopeScore && isoFormulas != nil {
			isoScore = isoFormulas[r.formula.String()]
			score += isoScore
		}
		r.isoScore = isoScore
		out = append(out, rankedCandidate{
			candidateResult:         r,
			score:                   score,
			explainedIntensityRatio: explainedIntensityRatio(r.tree, totalIntensity),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}

		return out[i].formula.String() < out[j].formula.String()
	})

	return out
}

func explainedIntensityRatio(tree subtree.FTree, totalIntensity float64) float64 {
	if totalIntensity <= 0 {
		return 0
	}
	var explained float64
	for _, n := range tree.Nodes {
		if n.ID == fgraph.RootID {
			continue
		}
		explained += n.Intensity
	}

	return explained / totalIntensity
}

func totalPeakIntensity(processed preprocess.ProcessedInput) float64 {
	var total float64
	for _, pp := range processed.Peaks {
		total += pp.Peak.Intensity
	}

	return total
}

// finalize assigns ranks 1..n to the top outputSize ranked candidates,
// converting them to IdentificationResults.
func finalize(ranked []rankedCandidate, outputSize int) []IdentificationResult {
	if outputSize > 0 && len(ranked) > outputSize {
		ranked = ranked[:outputSize]
	}
	out := make([]IdentificationResult, len(ranked))
	for i, r := range ranked {
		out[i] = IdentificationResult{
			Rank:                    i + 1,
			Formula:                 r.formula,
			IonType:                 r.ionType,
			Tree:                    r.tree,
			Score:                   r.score,
			IsotopeScore:            r.isoScore,
			ExplainedIntensityRatio: r.explainedIntensityRatio,
			NumberOfVertices:        len(r.tree.Nodes),
			Optimal:                 r.optimal,
			Recalibrated:            r.recalibrated,
		}
	}

	return out
}
