package store

import (
	"log/slog"

	"github.com/hyperengineering/studytrack/internal/types"
)

// PlanStore reads the study plan from a JSON file.
type PlanStore struct {
	path string
}

// NewPlanStore returns a store backed by the file at path.
func NewPlanStore(path string) *PlanStore {
	return &PlanStore{path: path}
}

// Path returns the backing file location.
func (s *PlanStore) Path() string {
	return s.path
}

// Load returns the persisted plan. If the file cannot be read, cannot be
// parsed, or does not hold exactly 12 months, the default plan is written in
// its place and returned.
func (s *PlanStore) Load() (*types.Plan, error) {
	var plan types.Plan
	err := readJSON(s.path, &plan)
	if err == nil && len(plan.Months) != types.PlanMonths {
		err = ErrInvalidPlan
	}
	if err == nil {
		return &plan, nil
	}

	slog.Info("plan document unusable, writing default",
		"component", "store",
		"path", s.path,
		"error", err,
	)

	def := DefaultPlan()
	if err := writeJSON(s.path, def); err != nil {
		return nil, err
	}
	return def, nil
}

// DefaultPlan returns the built-in 12-month curriculum.
func DefaultPlan() *types.Plan {
	month := func(focus string, daily, resources map[string]string) types.MonthPlan {
		return types.MonthPlan{Focus: focus, Daily: daily, Resources: resources}
	}

	return &types.Plan{Months: []types.MonthPlan{
		month("Language fundamentals",
			map[string]string{
				"Problems": "2 easy array/string problems in each language",
				"Reading":  "30 min of language reference",
				"Practice": "Re-implement one standard library helper",
			},
			map[string]string{
				"Scripting": "Eloquent JavaScript, chapters 1-6",
				"Systems":   "A Tour of C++, chapters 1-4",
			}),
		month("Core data structures",
			map[string]string{
				"Problems": "3 problems on hashing, stacks and queues",
				"Build":    "Implement a dynamic array and a hash map from scratch",
			},
			map[string]string{
				"Course": "Algorithms, Part I (Princeton)",
				"Book":   "Grokking Algorithms",
			}),
		month("Linked structures and recursion",
			map[string]string{
				"Problems": "3 linked list or recursion problems",
				"Project":  "1 hour on a CLI utility in the scripting language",
			},
			map[string]string{
				"Patterns": "NeetCode roadmap: Linked List, Backtracking",
			}),
		month("Trees and graphs",
			map[string]string{
				"Problems": "3 tree/graph traversal problems",
				"Review":   "Redo one failed problem from last week",
			},
			map[string]string{
				"Book":     "The Algorithm Design Manual, chapters 5-6",
				"Practice": "LeetCode Explore: Binary Tree, Graph",
			}),
		month("Systems language depth",
			map[string]string{
				"Problems": "2 medium problems in the systems language",
				"Project":  "1 hour on a memory allocator or container",
			},
			map[string]string{
				"Book": "Effective Modern C++",
				"Talk": "CppCon back-to-basics track",
			}),
		month("Dynamic programming",
			map[string]string{
				"Problems": "2 DP problems, one top-down and one bottom-up",
				"Notes":    "Write the recurrence before coding",
			},
			map[string]string{
				"Patterns": "NeetCode roadmap: 1-D and 2-D DP",
			}),
		month("System design foundations",
			map[string]string{
				"Problems": "2 medium problems",
				"Design":   "Read one system design case study",
			},
			map[string]string{
				"Book":  "Designing Data-Intensive Applications, part I",
				"Guide": "System Design Primer",
			}),
		month("Concurrency and performance",
			map[string]string{
				"Problems": "2 medium problems",
				"Project":  "1 hour on a thread pool or async job runner",
			},
			map[string]string{
				"Book": "C++ Concurrency in Action",
				"Docs": "Node.js event loop guide",
			}),
		month("Capstone projects",
			map[string]string{
				"Project":  "2 hours on the capstone project",
				"Problems": "1 hard problem",
			},
			map[string]string{
				"Ideas": "Ray tracer, key-value store, chat server",
			}),
		month("Advanced system design",
			map[string]string{
				"Design":   "One full design session per day, timed at 45 minutes",
				"Problems": "2 medium problems",
			},
			map[string]string{
				"Book":      "Designing Data-Intensive Applications, part II",
				"Interview": "System Design Interview, volume 2",
			}),
		month("Mock interviews",
			map[string]string{
				"Mock":     "One mock interview every other day",
				"Problems": "3 mixed-difficulty problems under time limit",
			},
			map[string]string{
				"Platform": "Pramp or interviewing.io",
				"Book":     "Cracking the Coding Interview",
			}),
		month("Final review",
			map[string]string{
				"Review":     "Revisit every problem marked as failed",
				"Behavioral": "Prepare 2 STAR stories per day",
			},
			map[string]string{
				"List":  "Blind 75 final pass",
				"Guide": "Company-specific interview guides",
			}),
	}}
}
