package data

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed names/*.json reference/*.json
var dataFiles embed.FS

// ReferenceData holds all loaded reference data for the generator
type ReferenceData struct {
	CustomerNames CustomerNamesData
	OfficerNames  OfficerNamesData
	Regions       RegionsData
	Branches      BranchesData
	Customers     CustomersData

	// Lookup tables built once after loading
	regionSet   WeightedSet
	settingSet  WeightedSet
	businessSet WeightedSet
	incomeSet   WeightedSet
	regionIndex map[string]int
}

// Weighted is a categorical value with its sampling weight
type Weighted struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// WeightedSet is a categorical distribution split into parallel slices
// so generators can hand the weights straight to Random.WeightedPick.
type WeightedSet struct {
	Names   []string
	Weights []float64
}

// CustomerNamesData represents the structure of names/customers.json
type CustomerNamesData struct {
	Male   []string `json:"male"`
	Female []string `json:"female"`
	Last   []string `json:"last"`
}

// OfficerNamesData represents the structure of names/officers.json
type OfficerNamesData struct {
	First []string `json:"first"`
	Last  []string `json:"last"`
}

// RegionsData represents the structure of reference/regions.json
type RegionsData struct {
	Regions []Weighted `json:"regions"`
}

// BranchesData represents the structure of reference/branches.json
type BranchesData struct {
	NamePrefixes []string   `json:"name_prefixes"`
	NameSuffixes []string   `json:"name_suffixes"`
	Settings     []Weighted `json:"settings"`
}

// CustomersData represents the structure of reference/customers.json
type CustomersData struct {
	BusinessTypes []Weighted `json:"business_types"`
	IncomeBands   []Weighted `json:"income_bands"`
	PhonePrefixes []string   `json:"phone_prefixes"`
}

var (
	instance *ReferenceData
	once     sync.Once
	loadErr  error
)

// Load loads all reference data from embedded files
// This is thread-safe and will only load data once
func Load() (*ReferenceData, error) {
	once.Do(func() {
		instance = &ReferenceData{}
		loadErr = instance.loadAll()
	})

	if loadErr != nil {
		return nil, loadErr
	}
	return instance, nil
}

// loadAll loads all data files
func (r *ReferenceData) loadAll() error {
	files := []struct {
		path string
		dest any
	}{
		{"names/customers.json", &r.CustomerNames},
		{"names/officers.json", &r.OfficerNames},
		{"reference/regions.json", &r.Regions},
		{"reference/branches.json", &r.Branches},
		{"reference/customers.json", &r.Customers},
	}

	for _, f := range files {
		data, err := dataFiles.ReadFile(f.path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.path, err)
		}
		if err := json.Unmarshal(data, f.dest); err != nil {
			return fmt.Errorf("failed to parse %s: %w", f.path, err)
		}
	}

	r.buildLookups()

	return nil
}

// buildLookups creates efficient lookup structures
func (r *ReferenceData) buildLookups() {
	r.regionSet = newWeightedSet(r.Regions.Regions)
	r.settingSet = newWeightedSet(r.Branches.Settings)
	r.businessSet = newWeightedSet(r.Customers.BusinessTypes)
	r.incomeSet = newWeightedSet(r.Customers.IncomeBands)

	r.regionIndex = make(map[string]int, len(r.Regions.Regions))
	for i, region := range r.Regions.Regions {
		r.regionIndex[region.Name] = i
	}
}

// newWeightedSet copies items into parallel slices with weights scaled to sum
// to 1. The business type weights in the reference file total 0.98.
func newWeightedSet(items []Weighted) WeightedSet {
	set := WeightedSet{
		Names:   make([]string, len(items)),
		Weights: make([]float64, len(items)),
	}
	total := 0.0
	for i, item := range items {
		set.Names[i] = item.Name
		set.Weights[i] = item.Weight
		total += item.Weight
	}
	if total > 0 {
		for i := range set.Weights {
			set.Weights[i] /= total
		}
	}
	return set
}

// RegionSet returns the region distribution in file order
func (r *ReferenceData) RegionSet() WeightedSet {
	return r.regionSet
}

// RegionNames returns all region names in file order
func (r *ReferenceData) RegionNames() []string {
	return r.regionSet.Names
}

// HasRegion reports whether name is one of the known regions
func (r *ReferenceData) HasRegion(name string) bool {
	_, ok := r.regionIndex[name]
	return ok
}

// SettingSet returns the urban/rural classification distribution
func (r *ReferenceData) SettingSet() WeightedSet {
	return r.settingSet
}

// BusinessTypeSet returns the customer business type distribution
func (r *ReferenceData) BusinessTypeSet() WeightedSet {
	return r.businessSet
}

// IncomeBandSet returns the monthly income band distribution
func (r *ReferenceData) IncomeBandSet() WeightedSet {
	return r.incomeSet
}

// GetFirstNames returns customer first names for a gender
func (r *ReferenceData) GetFirstNames(isMale bool) []string {
	if isMale {
		return r.CustomerNames.Male
	}
	return r.CustomerNames.Female
}

// GetLastNames returns customer last names
func (r *ReferenceData) GetLastNames() []string {
	return r.CustomerNames.Last
}

// PhonePrefixes returns mobile network prefixes
func (r *ReferenceData) PhonePrefixes() []string {
	return r.Customers.PhonePrefixes
}
