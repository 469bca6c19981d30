// Package pipelinedef models a CodePipeline as stages of actions connected
// by typed artifacts, and checks that the artifact chain is sound before
// anything is handed to CloudFormation.
//
// An artifact is declared once with NewArtifact and the same value is passed
// to the producing action's Outputs and to every consumer's Inputs. Validate
// then guarantees that each input is produced by an action that runs
// earlier: a lower RunOrder in the same stage, or any action of an earlier
// stage.
package pipelinedef

// Category is the kind of work an action performs.
type Category string

const (
	CategorySource   Category = "Source"
	CategoryBuild    Category = "Build"
	CategoryTest     Category = "Test"
	CategoryDeploy   Category = "Deploy"
	CategoryApproval Category = "Approval"
	CategoryInvoke   Category = "Invoke"
)

// Owner is the creator of an action type.
type Owner string

const (
	OwnerAWS        Owner = "AWS"
	OwnerThirdParty Owner = "ThirdParty"
	OwnerCustom     Owner = "Custom"
)

// Artifact is a named hand-off between actions.
type Artifact struct {
	name string
}

// NewArtifact declares an artifact.
func NewArtifact(name string) Artifact {
	return Artifact{name: name}
}

// Name returns the artifact name.
func (a Artifact) Name() string { return a.name }

// Action is a single step within a stage.
type Action struct {
	Name     string
	Category Category
	Owner    Owner
	Provider string
	Version  string
	RunOrder int
	// Configuration values may be CDK tokens.
	Configuration map[string]string
	Inputs        []Artifact
	Outputs       []Artifact
}

// Stage is an ordered group of actions. Stages run one after the other.
type Stage struct {
	Name    string
	Actions []Action
}

// Pipeline is an ordered list of stages.
type Pipeline struct {
	Stages []Stage
}

// StageNames returns the stage names in declaration order.
func (p *Pipeline) StageNames() []string {
	names := make([]string, 0, len(p.Stages))
	for _, s := range p.Stages {
		names = append(names, s.Name)
	}
	return names
}

// Stage returns the stage with the given name.
func (p *Pipeline) Stage(name string) (*Stage, bool) {
	for i := range p.Stages {
		if p.Stages[i].Name == name {
			return &p.Stages[i], true
		}
	}
	return nil, false
}

// Action returns the named action of the named stage.
func (p *Pipeline) Action(stage, name string) (*Action, bool) {
	s, ok := p.Stage(stage)
	if !ok {
		return nil, false
	}
	for i := range s.Actions {
		if s.Actions[i].Name == name {
			return &s.Actions[i], true
		}
	}
	return nil, false
}

// Producer returns the stage and action that outputs the artifact.
func (p *Pipeline) Producer(a Artifact) (stage string, action *Action, ok bool) {
	for i := range p.Stages {
		for j := range p.Stages[i].Actions {
			for _, out := range p.Stages[i].Actions[j].Outputs {
				if out == a {
					return p.Stages[i].Name, &p.Stages[i].Actions[j], true
				}
			}
		}
	}
	return "", nil, false
}

// Names returns the artifact names.
func Names(artifacts []Artifact) []string {
	names := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		names = append(names, a.name)
	}
	return names
}
