// Package analyzer classifies task descriptions into broad work types and
// suggests a subtask breakdown for each type. Classification is regex
// scoring over the lowercased description; callers turn the suggested
// subtasks into real ones via the state store.
package analyzer

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Task types produced by Analyze.
const (
	TypeSelfEnhancement = "self_enhancement"
	TypeDataAnalysis    = "data_analysis"
	TypeFrontend        = "frontend_development"
	TypeBackend         = "backend_development"
	TypeGeneral         = "general"
)

// Subtask is one suggested unit of work for a classified task.
type Subtask struct {
	Description  string `yaml:"description" json:"description"`
	Agent        string `yaml:"agent" json:"agent"`
	Capabilities string `yaml:"capabilities" json:"capabilities"`
}

// Rule ties a task type to the patterns that indicate it and the subtask
// breakdown to suggest when it wins. Weight scales each pattern hit when
// scoring, letting a type outrank broader ones.
type Rule struct {
	Type     string    `yaml:"type"`
	Weight   int       `yaml:"weight"`
	Patterns []string  `yaml:"patterns"`
	Subtasks []Subtask `yaml:"subtasks"`
}

// Analysis is the result of classifying one task description.
type Analysis struct {
	TaskID   string    `json:"task_id"`
	Type     string    `json:"task_type"`
	Subtasks []Subtask `json:"subtasks"`
}

type compiledRule struct {
	typ      string
	weight   int
	patterns []*regexp.Regexp
	subtasks []Subtask
}

// Analyzer holds a compiled ruleset. The zero value is not usable; build
// one with New or Default.
type Analyzer struct {
	rules []compiledRule
}

// Default returns an analyzer with the built-in ruleset.
func Default() *Analyzer {
	a, err := New(builtinRules())
	if err != nil {
		// Built-in patterns are compile-checked by tests.
		panic(fmt.Sprintf("built-in analyzer rules: %v", err))
	}
	return a
}

// New compiles the given rules into an analyzer. Rules sharing a type are
// merged, extra patterns and subtasks appending to the earlier rule.
func New(rules []Rule) (*Analyzer, error) {
	a := &Analyzer{}
	index := make(map[string]int)
	for _, r := range rules {
		weight := r.Weight
		if weight <= 0 {
			weight = 1
		}
		var compiled []*regexp.Regexp
		for _, p := range r.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q for type %q: %w", p, r.Type, err)
			}
			compiled = append(compiled, re)
		}
		if i, ok := index[r.Type]; ok {
			a.rules[i].patterns = append(a.rules[i].patterns, compiled...)
			a.rules[i].subtasks = append(a.rules[i].subtasks, r.Subtasks...)
			continue
		}
		index[r.Type] = len(a.rules)
		a.rules = append(a.rules, compiledRule{
			typ:      r.Type,
			weight:   weight,
			patterns: compiled,
			subtasks: r.Subtasks,
		})
	}
	return a, nil
}

// LoadRules reads extra rules from a YAML file and returns an analyzer
// combining them with the built-in ruleset.
func LoadRules(path string) (*Analyzer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	var file struct {
		Rules []Rule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	return New(append(builtinRules(), file.Rules...))
}

// Analyze classifies a task description and returns the suggested subtask
// breakdown for its type. Unmatched descriptions come back as general
// with no subtasks.
func (a *Analyzer) Analyze(taskID, description string) Analysis {
	lower := strings.ToLower(description)

	typ := a.overrideType(lower)
	if typ == "" {
		typ = a.scoreType(lower)
	}

	var subtasks []Subtask
	for _, r := range a.rules {
		if r.typ == typ {
			subtasks = append(subtasks, r.subtasks...)
			break
		}
	}
	return Analysis{TaskID: taskID, Type: typ, Subtasks: subtasks}
}

// overrideType short-circuits scoring for descriptions that unambiguously
// ask for capability enhancement, which otherwise tend to also trip the
// frontend and backend patterns.
func (a *Analyzer) overrideType(lower string) string {
	has := func(s string) bool { return strings.Contains(lower, s) }
	switch {
	case has("enhance") && (has("capabilities") || has("ability")):
		return TypeSelfEnhancement
	case has("search") && has("internet"):
		return TypeSelfEnhancement
	case has("coding") && (has("sandbox") || has("test")):
		return TypeSelfEnhancement
	case has("browser") && has("internet"):
		return TypeSelfEnhancement
	}
	return ""
}

func (a *Analyzer) scoreType(lower string) string {
	best := TypeGeneral
	bestScore := 0
	for _, r := range a.rules {
		score := 0
		for _, re := range r.patterns {
			if re.MatchString(lower) {
				score += r.weight
			}
		}
		if score > bestScore {
			best = r.typ
			bestScore = score
		}
	}
	return best
}

func builtinRules() []Rule {
	return []Rule{
		{
			Type:   TypeSelfEnhancement,
			Weight: 2,
			Patterns: []string{
				`self.?enhancement`,
				`enhanc(e|ing).*capabilit(y|ies)`,
				`creat(e|ing) tool(s| kit)?`,
				`tool(s| kit)? (for|to) enhance`,
				`search.*internet`,
				`web search`,
				`coding sandbox`,
				`web brows(er|ing)`,
				`browse.*web`,
				`internet.*tool`,
				`internet.*search`,
				`search.*web`,
				`way to search`,
				`coding test`,
				`run coding`,
				`deploy.*main file`,
				`browser.*internet`,
				`way to browser`,
			},
			Subtasks: []Subtask{
				{
					Description:  "Develop a web search tool that allows agents to search the internet for up-to-date information using search APIs",
					Agent:        "agent3",
					Capabilities: "api,python,integration",
				},
				{
					Description:  "Create a code sandbox environment for testing code before deploying it to main files, including execution and validation",
					Agent:        "agent3",
					Capabilities: "python,api",
				},
				{
					Description:  "Implement a web browsing interface for navigating websites, extracting content, and interacting with pages",
					Agent:        "agent2",
					Capabilities: "javascript,visualization",
				},
				{
					Description:  "Create a unified user interface that integrates all enhancement tools with a clean, intuitive frontend",
					Agent:        "agent1",
					Capabilities: "css,javascript",
				},
			},
		},
		{
			Type: TypeDataAnalysis,
			Patterns: []string{
				`data analysis`,
				`analyze.*data`,
				`process.*dataset`,
				`dashboard`,
				`visualiz(e|ation)`,
				`statistic(s|al)`,
			},
			Subtasks: []Subtask{
				{
					Description:  "Load and clean the dataset, handling missing values and outliers",
					Agent:        "agent2",
					Capabilities: "python,data_processing",
				},
				{
					Description:  "Perform exploratory data analysis and generate statistical insights",
					Agent:        "agent3",
					Capabilities: "python,analytics",
				},
				{
					Description:  "Create data visualizations and charts to represent key findings",
					Agent:        "agent1",
					Capabilities: "visualization,javascript",
				},
				{
					Description:  "Prepare final report with insights and recommendations based on the analysis",
					Agent:        "team_lead",
					Capabilities: "analytics,documentation",
				},
			},
		},
		{
			Type: TypeFrontend,
			Patterns: []string{
				`frontend`,
				`ui`,
				`user interface`,
				`web.*design`,
				`css`,
				`html`,
				`react`,
				`vue`,
				`angular`,
			},
			Subtasks: []Subtask{
				{
					Description:  "Design UI mockups and layout for the application",
					Agent:        "agent1",
					Capabilities: "design,css",
				},
				{
					Description:  "Implement core UI components and responsive design",
					Agent:        "agent2",
					Capabilities: "javascript,css",
				},
				{
					Description:  "Create client-side logic and data handling",
					Agent:        "agent3",
					Capabilities: "javascript,api",
				},
			},
		},
		{
			Type: TypeBackend,
			Patterns: []string{
				`backend`,
				`server`,
				`api`,
				`database`,
				`endpoint`,
				`rest`,
				`graphql`,
			},
			Subtasks: []Subtask{
				{
					Description:  "Design database schema and data models",
					Agent:        "agent2",
					Capabilities: "database,python",
				},
				{
					Description:  "Implement API endpoints and server logic",
					Agent:        "agent3",
					Capabilities: "api,python",
				},
				{
					Description:  "Create authentication and authorization system",
					Agent:        "agent1",
					Capabilities: "security,api",
				},
			},
		},
	}
}
