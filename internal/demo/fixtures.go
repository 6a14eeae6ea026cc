package demo

import (
	"github.com/pkgaudit/pkgaudit/feed"
	"github.com/pkgaudit/pkgaudit/plan"
	"github.com/pkgaudit/pkgaudit/scope"
)

// FixturePackageVersionsSource is a plan.Source of feed.Package elements
// drawn from a small, hardcoded fixture of the kind cleanup.py's own
// docstring describes: "pkga-1 is keyworded amd64, pkga-2 is amd64".
//
// feed_type=feed.Package, scope=scope.Package.
type FixturePackageVersionsSource struct {
	cost  float64
	items []PackageVersions
}

// NewFixturePackageVersionsSource builds the default fixture at the given cost.
func NewFixturePackageVersionsSource(cost float64) *FixturePackageVersionsSource {
	return &FixturePackageVersionsSource{
		cost: cost,
		items: []PackageVersions{
			{
				Category: "dev-lang",
				Package:  "pkga",
				Versions: []PackageVersion{
					{Version: "1", Keywords: []string{"amd64"}},
					{Version: "2", Keywords: []string{"amd64", "arm64"}},
				},
			},
			{
				Category: "dev-lang",
				Package:  "pkgb",
				Versions: []PackageVersion{
					{Version: "1", Keywords: []string{"amd64", "-arm64"}},
					{Version: "2", Keywords: []string{"arm64"}},
				},
			},
		},
	}
}

func (s *FixturePackageVersionsSource) FeedType() feed.Type { return feed.Package }
func (s *FixturePackageVersionsSource) Scope() scope.Scope  { return scope.Package }
func (s *FixturePackageVersionsSource) Cost() float64       { return s.cost }

func (s *FixturePackageVersionsSource) Feed() plan.Iterator {
	elements := make([]any, len(s.items))
	for i, v := range s.items {
		elements[i] = v
	}
	return &elementIterator{items: elements}
}

// FixtureCategoryPackagesSource is a plan.Source of feed.Category
// elements modeled on unported_mod_x.py's modular-X scenario: packages
// that still depend on the monolithic virtual/x11.
//
// feed_type=feed.Category, scope=scope.Category.
type FixtureCategoryPackagesSource struct {
	cost  float64
	items []CategoryPackages
}

// NewFixtureCategoryPackagesSource builds the default fixture at the given cost.
func NewFixtureCategoryPackagesSource(cost float64) *FixtureCategoryPackagesSource {
	return &FixtureCategoryPackagesSource{
		cost: cost,
		items: []CategoryPackages{
			{
				Category: "x11-base",
				Packages: []PackageProfile{
					{Package: "xorg-modular", Version: "7.1", ReferencesModX: true, Virtual: "virtual/x11"},
					{Package: "xorg-legacy", Version: "6.9", ReferencesModX: true, Virtual: "virtual/x11"},
					{Package: "unrelated-tool", Version: "1.0"},
				},
			},
		},
	}
}

func (s *FixtureCategoryPackagesSource) FeedType() feed.Type { return feed.Category }
func (s *FixtureCategoryPackagesSource) Scope() scope.Scope  { return scope.Category }
func (s *FixtureCategoryPackagesSource) Cost() float64       { return s.cost }

func (s *FixtureCategoryPackagesSource) Feed() plan.Iterator {
	elements := make([]any, len(s.items))
	for i, v := range s.items {
		elements[i] = v
	}
	return &elementIterator{items: elements}
}

type elementIterator struct {
	items []any
	idx   int
}

func (it *elementIterator) Next() (any, bool, error) {
	if it.idx >= len(it.items) {
		return nil, false, nil
	}
	v := it.items[it.idx]
	it.idx++
	return v, true, nil
}

func (it *elementIterator) Close() error { return nil }

// DefaultModXAllowlist is the fixture stand-in for unported_mod_x.py's
// valid_modx_pkgs_url fetch: packages on this list are treated as an
// already-ported, allowlisted replacement for the legacy virtual.
var DefaultModXAllowlist = []string{"x11-base/xorg-modular"}

// NewModXFeeder builds a plan.Feeder whose Profile checks category/pkg
// keys (as produced by UnportedModXCheck) against allowlist.
func NewModXFeeder(allowlist []string) plan.Feeder {
	set := make(map[string]bool, len(allowlist))
	for _, a := range allowlist {
		set[a] = true
	}
	return plan.NewMapFeeder(func(pkg any) (any, error) {
		key, _ := pkg.(string)
		return set[key], nil
	})
}
