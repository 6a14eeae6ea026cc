package demo

import (
	"fmt"
	"strings"

	"github.com/pkgaudit/pkgaudit/feed"
	"github.com/pkgaudit/pkgaudit/plan"
	"github.com/pkgaudit/pkgaudit/scope"
)

// PackageVersions is one element of feed.Package: every known version of
// a single category/package, oldest first.
type PackageVersions struct {
	Category string
	Package  string
	Versions []PackageVersion
}

// PackageVersion is a single version entry, carrying its keyword set the
// way a package manager's ebuild metadata would.
type PackageVersion struct {
	Version  string
	Keywords []string
}

// nonNegatedKeywords returns the keywords not prefixed with "-", mirroring
// cleanup.py's "curr_set = set(x for x in pkg.keywords if not
// x.startswith('-'))".
func nonNegatedKeywords(keywords []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		if !strings.HasPrefix(k, "-") {
			set[k] = struct{}{}
		}
	}
	return set
}

// subsetOf reports whether every element of a is present in b.
func subsetOf(a, b map[string]struct{}) bool {
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// RedundantVersionResult reports a version whose keyword set is fully
// covered by one or more later versions, making it a plausible removal
// candidate.
type RedundantVersionResult struct {
	category, pkg, version string
	laterVersions          []string
}

func (r RedundantVersionResult) ToStr() string {
	return fmt.Sprintf("%s/%s-%s: keywords are the same as version(s) %s",
		r.category, r.pkg, r.version, strings.Join(r.laterVersions, ", "))
}

func (r RedundantVersionResult) ToXML() string {
	return fmt.Sprintf(
		"<check name=\"RedundantVersionResult\">\n\t<category>%s</category>\n\t<package>%s</package>\n\t<version>%s</version>\n\t<msg>keywords are the same as version(s): %s</msg>\n</check>",
		r.category, r.pkg, r.version, strings.Join(r.laterVersions, ", "))
}

func (r RedundantVersionResult) Category() string { return r.category }
func (r RedundantVersionResult) Package() string  { return r.pkg }
func (r RedundantVersionResult) Version() string  { return r.version }

// RedundantVersionCheck scans a package's versions, newest to oldest,
// reporting any version whose non-negated keyword set is already covered
// by a keyword set seen among later (newer) versions.
//
// feed_type=feed.Package, scope=scope.Package.
type RedundantVersionCheck struct{}

func NewRedundantVersionCheck() *RedundantVersionCheck { return &RedundantVersionCheck{} }

func (c *RedundantVersionCheck) FeedType() feed.Type { return feed.Package }
func (c *RedundantVersionCheck) Scope() scope.Scope  { return scope.Package }
func (c *RedundantVersionCheck) String() string      { return "RedundantVersionCheck" }

func (c *RedundantVersionCheck) Feed(tail plan.Iterator, reporter plan.Reporter) (plan.Iterator, error) {
	return &redundantVersionTee{tail: tail, reporter: reporter}, nil
}

type redundantVersionTee struct {
	tail     plan.Iterator
	reporter plan.Reporter
}

func (t *redundantVersionTee) Next() (any, bool, error) {
	v, ok, err := t.tail.Next()
	if err != nil || !ok {
		return v, ok, err
	}
	pv, ok := v.(PackageVersions)
	if !ok {
		return nil, false, fmt.Errorf("RedundantVersionCheck: %w: got %T", ErrWrongElement, v)
	}
	if err := t.scan(pv); err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (t *redundantVersionTee) scan(pv PackageVersions) error {
	if len(pv.Versions) < 2 {
		return nil
	}

	type seen struct {
		version  string
		keywords map[string]struct{}
	}
	var stack []seen

	for i := len(pv.Versions) - 1; i >= 0; i-- {
		ver := pv.Versions[i]
		curr := nonNegatedKeywords(ver.Keywords)
		if len(curr) == 0 {
			continue
		}
		var matches []string
		for _, s := range stack {
			if subsetOf(curr, s.keywords) {
				matches = append(matches, s.version)
			}
		}
		stack = append(stack, seen{version: ver.Version, keywords: curr})
		if len(matches) > 0 {
			if err := t.reporter.AddReport(RedundantVersionResult{
				category:      pv.Category,
				pkg:           pv.Package,
				version:       ver.Version,
				laterVersions: matches,
			}); err != nil {
				return fmt.Errorf("RedundantVersionCheck: reporting: %w", err)
			}
		}
	}
	return nil
}

func (t *redundantVersionTee) Close() error { return t.tail.Close() }
