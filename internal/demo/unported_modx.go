package demo

import (
	"fmt"

	"github.com/pkgaudit/pkgaudit/feed"
	"github.com/pkgaudit/pkgaudit/plan"
	"github.com/pkgaudit/pkgaudit/scope"
)

// CategoryPackages is one element of feed.Category: every package in a
// category, along with the legacy virtual it references (if any).
type CategoryPackages struct {
	Category string
	Packages []PackageProfile
}

// PackageProfile is the subset of a package's dependency data
// UnportedModXCheck needs: whether it references the legacy "mod_x"
// virtual at all, and if so, which one.
type PackageProfile struct {
	Package       string
	Version       string
	ReferencesModX bool
	Virtual        string
}

// SuggestRemovalResult reports a package that still depends on the
// legacy monolithic-X virtual and is not itself on the modular
// allowlist, mirroring unported_mod_x.py's SuggestRemoval.
type SuggestRemovalResult struct {
	category, pkg, version, virtual string
}

func (r SuggestRemovalResult) ToStr() string {
	return fmt.Sprintf("%s/%s-%s: references unported virtual %q, not on the modular allowlist",
		r.category, r.pkg, r.version, r.virtual)
}

func (r SuggestRemovalResult) ToXML() string {
	return fmt.Sprintf(
		"<check name=\"SuggestRemovalResult\">\n\t<category>%s</category>\n\t<package>%s</package>\n\t<version>%s</version>\n\t<msg>unported, suggest replacing virtual %s</msg>\n</check>",
		r.category, r.pkg, r.version, r.virtual)
}

func (r SuggestRemovalResult) Category() string { return r.category }
func (r SuggestRemovalResult) Package() string  { return r.pkg }
func (r SuggestRemovalResult) Version() string  { return r.version }

// UnportedModXCheck flags packages that reference a legacy "mod_x"
// virtual not present on an allowlist, consulted and memoized through a
// plan.Feeder the way unported_mod_x.py memoizes repository lookups in
// query_cache. The allowlist lookup is modeled as Feeder.Profile, kept
// opaque to this check: Profile may hit a network allowlist fetch, a
// local file, or a fake in tests.
//
// feed_type=feed.Category, scope=scope.Category.
type UnportedModXCheck struct {
	feeder plan.Feeder
}

// NewUnportedModXCheck wires feeder, the check's only collaborator
// (dependency injection, not threaded through the planner).
func NewUnportedModXCheck(feeder plan.Feeder) *UnportedModXCheck {
	return &UnportedModXCheck{feeder: feeder}
}

func (c *UnportedModXCheck) FeedType() feed.Type { return feed.Category }
func (c *UnportedModXCheck) Scope() scope.Scope  { return scope.Category }
func (c *UnportedModXCheck) String() string      { return "UnportedModXCheck" }

func (c *UnportedModXCheck) Feed(tail plan.Iterator, reporter plan.Reporter) (plan.Iterator, error) {
	return &unportedModXTee{tail: tail, reporter: reporter, feeder: c.feeder}, nil
}

type unportedModXTee struct {
	tail     plan.Iterator
	reporter plan.Reporter
	feeder   plan.Feeder
}

func (t *unportedModXTee) Next() (any, bool, error) {
	v, ok, err := t.tail.Next()
	if err != nil || !ok {
		return v, ok, err
	}
	cp, ok := v.(CategoryPackages)
	if !ok {
		return nil, false, fmt.Errorf("UnportedModXCheck: %w: got %T", ErrWrongElement, v)
	}
	if err := t.scan(cp); err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (t *unportedModXTee) scan(cp CategoryPackages) error {
	for _, pkg := range cp.Packages {
		if !pkg.ReferencesModX {
			continue
		}
		key := cp.Category + "/" + pkg.Package
		cache := t.feeder.QueryCache()
		allowed, cached := cache[key]
		if !cached {
			profile, err := t.feeder.Profile(key)
			if err != nil {
				return fmt.Errorf("UnportedModXCheck: profiling %s: %w", key, err)
			}
			allowed = profile
			cache[key] = allowed
		}
		isAllowed, _ := allowed.(bool)
		if isAllowed {
			continue
		}
		if err := t.reporter.AddReport(SuggestRemovalResult{
			category: cp.Category,
			pkg:      pkg.Package,
			version:  pkg.Version,
			virtual:  pkg.Virtual,
		}); err != nil {
			return fmt.Errorf("UnportedModXCheck: reporting: %w", err)
		}
	}
	return nil
}

func (t *unportedModXTee) Close() error { return t.tail.Close() }
