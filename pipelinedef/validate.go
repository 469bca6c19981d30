package pipelinedef

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// Limits enforced by CodePipeline.
const (
	MinStages   = 2
	MaxRunOrder = 999
)

// Stage and action names may contain dots and at signs, artifact names may
// not.
var (
	namePattern         = regexp.MustCompile(`^[A-Za-z0-9.@_-]{1,100}$`)
	artifactNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,100}$`)
)

var (
	validCategories = map[Category]bool{
		CategorySource: true, CategoryBuild: true, CategoryTest: true,
		CategoryDeploy: true, CategoryApproval: true, CategoryInvoke: true,
	}
	validOwners = map[Owner]bool{
		OwnerAWS: true, OwnerThirdParty: true, OwnerCustom: true,
	}
)

type producedAt struct {
	stage    int
	runOrder int
	action   string
}

// Validate checks the structure of the pipeline and its artifact chain. All
// problems are reported in a single error.
func (p *Pipeline) Validate() error {
	var errs []string
	addf := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	if len(p.Stages) < MinStages {
		addf("pipeline needs at least %d stages, got %d", MinStages, len(p.Stages))
	}

	producers := map[string]producedAt{}
	stageNames := map[string]bool{}

	for si, stage := range p.Stages {
		if !namePattern.MatchString(stage.Name) {
			addf("stage %d: invalid name %q", si+1, stage.Name)
		}
		if stageNames[stage.Name] {
			addf("stage %q: declared more than once", stage.Name)
		}
		stageNames[stage.Name] = true

		if len(stage.Actions) == 0 {
			addf("stage %q: has no actions", stage.Name)
		}

		actionNames := map[string]bool{}
		for _, a := range stage.Actions {
			where := fmt.Sprintf("stage %q action %q", stage.Name, a.Name)

			if !namePattern.MatchString(a.Name) {
				addf("%s: invalid name", where)
			}
			if actionNames[a.Name] {
				addf("%s: declared more than once", where)
			}
			actionNames[a.Name] = true

			if !validCategories[a.Category] {
				addf("%s: unknown category %q", where, a.Category)
			}
			if !validOwners[a.Owner] {
				addf("%s: unknown owner %q", where, a.Owner)
			}
			if a.Provider == "" {
				addf("%s: provider is required", where)
			}
			if a.Version == "" {
				addf("%s: version is required", where)
			}
			if a.RunOrder < 1 || a.RunOrder > MaxRunOrder {
				addf("%s: run order %d out of range 1..%d", where, a.RunOrder, MaxRunOrder)
			}

			isSource := a.Category == CategorySource
			switch {
			case si == 0 && !isSource:
				addf("%s: first stage may only contain source actions", where)
			case si > 0 && isSource:
				addf("%s: source actions are only allowed in the first stage", where)
			}
			if isSource {
				if len(a.Inputs) > 0 {
					addf("%s: source actions take no input artifacts", where)
				}
				if len(a.Outputs) == 0 {
					addf("%s: source actions must produce an artifact", where)
				}
			}
			if a.Category == CategoryApproval && (len(a.Inputs) > 0 || len(a.Outputs) > 0) {
				addf("%s: approval actions neither consume nor produce artifacts", where)
			}

			for _, out := range a.Outputs {
				if !artifactNamePattern.MatchString(out.name) {
					addf("%s: invalid output artifact name %q", where, out.name)
					continue
				}
				if prev, ok := producers[out.name]; ok {
					addf("%s: artifact %q is already produced by action %q", where, out.name, prev.action)
					continue
				}
				producers[out.name] = producedAt{stage: si, runOrder: a.RunOrder, action: a.Name}
			}
		}
	}

	// Inputs are checked once every producer is known so a consumer declared
	// before its producer is reported as ordering, not as missing.
	for si, stage := range p.Stages {
		for _, a := range stage.Actions {
			for _, in := range a.Inputs {
				prod, ok := producers[in.name]
				switch {
				case !ok:
					addf("stage %q action %q: input artifact %q is not produced by any action",
						stage.Name, a.Name, in.name)
				case prod.stage > si, prod.stage == si && prod.runOrder >= a.RunOrder:
					addf("stage %q action %q: input artifact %q is produced by %q, which does not run earlier",
						stage.Name, a.Name, in.name, prod.action)
				}
			}
		}
	}

	if len(errs) > 0 {
		return errors.Newf("invalid pipeline definition:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
