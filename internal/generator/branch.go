package generator

import (
	"fmt"

	"github.com/willfong/mfi-generator/internal/config"
	"github.com/willfong/mfi-generator/internal/data"
	"github.com/willfong/mfi-generator/internal/models"
	"github.com/willfong/mfi-generator/internal/utils"
)

// BranchGenerator creates the branch roster and the officers staffing it.
type BranchGenerator struct {
	rng     *utils.Random
	refData *data.ReferenceData
	config  BranchGeneratorConfig
}

// BranchGeneratorConfig holds settings for branch/officer generation
type BranchGeneratorConfig struct {
	NumBranches int
	// Officers per branch, inclusive
	MinOfficers int
	MaxOfficers int
}

// NewBranchGenerator creates a new branch generator
func NewBranchGenerator(rng *utils.Random, refData *data.ReferenceData, cfg BranchGeneratorConfig) *BranchGenerator {
	if cfg.MinOfficers <= 0 {
		cfg.MinOfficers = config.MinOfficersPerBranch
	}
	if cfg.MaxOfficers < cfg.MinOfficers {
		cfg.MaxOfficers = cfg.MinOfficers
	}
	return &BranchGenerator{
		rng:     rng,
		refData: refData,
		config:  cfg,
	}
}

// GenerateBranches creates all branches with sequential BR ids
func (g *BranchGenerator) GenerateBranches() []models.Branch {
	branches := make([]models.Branch, 0, g.config.NumBranches)
	for i := 0; i < g.config.NumBranches; i++ {
		branches = append(branches, g.generateBranch(i+1))
	}
	return branches
}

// generateBranch creates a single branch
func (g *BranchGenerator) generateBranch(num int) models.Branch {
	name := fmt.Sprintf("%s %s %d",
		g.rng.PickString(g.refData.Branches.NamePrefixes),
		g.rng.PickString(g.refData.Branches.NameSuffixes),
		num)

	regions := g.refData.RegionSet()
	settings := g.refData.SettingSet()

	return models.Branch{
		ID:         fmt.Sprintf("BR%03d", num),
		Name:       name,
		Region:     regions.Names[g.rng.WeightedPick(regions.Weights)],
		UrbanRural: settings.Names[g.rng.WeightedPick(settings.Weights)],
		StaffCount: g.rng.IntRange(config.StaffCountMin, config.StaffCountMax),
		Tier:       models.Tier(config.Tiers[g.rng.WeightedPick(config.TierWeights)]),
		Latitude:   g.rng.Float64Range(config.LatitudeMin, config.LatitudeMax),
		Longitude:  g.rng.Float64Range(config.LongitudeMin, config.LongitudeMax),
	}
}

// GenerateOfficers staffs every branch with MinOfficers..MaxOfficers loan officers.
// Officer ids run sequentially across branches in roster order.
func (g *BranchGenerator) GenerateOfficers(branches []models.Branch) []models.Officer {
	avg := (g.config.MinOfficers + g.config.MaxOfficers) / 2
	officers := make([]models.Officer, 0, len(branches)*avg)

	next := 1
	for _, b := range branches {
		n := g.rng.IntRange(g.config.MinOfficers, g.config.MaxOfficers)
		for i := 0; i < n; i++ {
			officers = append(officers, models.Officer{
				ID: fmt.Sprintf("OF%06d", next),
				Name: fmt.Sprintf("%s %s",
					g.rng.PickString(g.refData.OfficerNames.First),
					g.rng.PickString(g.refData.OfficerNames.Last)),
				BranchID: b.ID,
				Role:     models.RoleLoanOfficer,
			})
			next++
		}
	}

	return officers
}

// Roster holds the read-only lookup tables later stages join against.
type Roster struct {
	Branches []models.Branch
	Officers []models.Officer

	branchByID       map[string]*models.Branch
	officersByBranch map[string][]string
	branchesByRegion map[string][]string
	branchIDs        []string
}

// NewRoster indexes branches and officers. Region lists and officer lists
// keep roster order so lookups are deterministic.
func NewRoster(branches []models.Branch, officers []models.Officer) *Roster {
	r := &Roster{
		Branches:         branches,
		Officers:         officers,
		branchByID:       make(map[string]*models.Branch, len(branches)),
		officersByBranch: make(map[string][]string, len(branches)),
		branchesByRegion: make(map[string][]string),
		branchIDs:        make([]string, 0, len(branches)),
	}

	for i := range branches {
		b := &branches[i]
		r.branchByID[b.ID] = b
		r.branchesByRegion[b.Region] = append(r.branchesByRegion[b.Region], b.ID)
		r.branchIDs = append(r.branchIDs, b.ID)
	}
	for _, o := range officers {
		r.officersByBranch[o.BranchID] = append(r.officersByBranch[o.BranchID], o.ID)
	}

	return r
}

// Branch returns the branch with the given id
func (r *Roster) Branch(id string) (*models.Branch, bool) {
	b, ok := r.branchByID[id]
	return b, ok
}

// OfficersFor returns the officer ids attached to a branch
func (r *Roster) OfficersFor(branchID string) []string {
	return r.officersByBranch[branchID]
}

// BranchesIn returns the branch ids in a region
func (r *Roster) BranchesIn(region string) []string {
	return r.branchesByRegion[region]
}

// BranchIDs returns every branch id in roster order
func (r *Roster) BranchIDs() []string {
	return r.branchIDs
}

// WriteRegionsCSV writes the region list
func WriteRegionsCSV(regions []string, outputDir string) (int64, error) {
	return writeTable(outputDir, tableSpec{
		Filename: FileRegions,
		Headers:  []string{"region"},
		Label:    "  Regions",
	}, regions, func(r *string) []string {
		return []string{*r}
	}, false)
}

// WriteBranchesCSV writes branches to branches.csv
func WriteBranchesCSV(branches []models.Branch, outputDir string, showProgress bool) (int64, error) {
	return writeTable(outputDir, tableSpec{
		Filename: FileBranches,
		Headers: []string{
			"branch_id", "branch_name", "region", "urban_rural",
			"staff_count", "avg_target_tier", "latitude", "longitude",
		},
		Label: "  Branches",
	}, branches, func(b *models.Branch) []string {
		return []string{
			b.ID,
			b.Name,
			b.Region,
			b.UrbanRural,
			FormatInt(b.StaffCount),
			string(b.Tier),
			FormatFloat64(b.Latitude),
			FormatFloat64(b.Longitude),
		}
	}, showProgress)
}

// WriteOfficersCSV writes officers to officers.csv
func WriteOfficersCSV(officers []models.Officer, outputDir string, showProgress bool) (int64, error) {
	return writeTable(outputDir, tableSpec{
		Filename: FileOfficers,
		Headers:  []string{"officer_id", "name", "branch_id", "role"},
		Label:    "  Officers",
	}, officers, func(o *models.Officer) []string {
		return []string{o.ID, o.Name, o.BranchID, string(o.Role)}
	}, showProgress)
}
