package models

// TaskType is the kind of micro-action a task slot holds
type TaskType string

const (
	TaskHabit      TaskType = "habit"
	TaskExercise   TaskType = "exercise"
	TaskReflection TaskType = "reflection"
	TaskFocus      TaskType = "focus"
	TaskBody       TaskType = "body"
)

// ParseTaskType falls back to habit
func ParseTaskType(s string) TaskType {
	switch t := TaskType(s); t {
	case TaskHabit, TaskExercise, TaskReflection, TaskFocus, TaskBody:
		return t
	}
	return TaskHabit
}

// UnmarshalJSON maps unknown types to habit
func (t *TaskType) UnmarshalJSON(data []byte) error {
	*t = ParseTaskType(decodeString(data))
	return nil
}

// TodayTask is one of the five slot-based micro-actions of the day
type TodayTask struct {
	ID              string   `json:"id" yaml:"id"`
	Type            TaskType `json:"type" yaml:"type"`
	Completed       bool     `json:"completed" yaml:"completed"`
	IsGrowthFocused bool     `json:"isGrowthFocused" yaml:"isGrowthFocused"`
	Variant         int      `json:"variant" yaml:"variant"`
}

// DayPlan aggregates today's tasks and challenges
type DayPlan struct {
	Date       string      `json:"date" yaml:"date"`
	MainGrowth Trait       `json:"mainGrowth" yaml:"mainGrowth"`
	Tasks      []TodayTask `json:"tasks" yaml:"tasks"`
	Challenges []Challenge `json:"challenges" yaml:"challenges"`
}

// TaskResult is returned after completing a task
type TaskResult struct {
	Tasks    []TodayTask `json:"tasks" yaml:"tasks"`
	XP       XPState     `json:"xp" yaml:"xp"`
	DidApply bool        `json:"didApply" yaml:"didApply"`
}

// ChallengeResult is returned after completing a challenge
type ChallengeResult struct {
	DayPlan  DayPlan `json:"dayPlan" yaml:"dayPlan"`
	XP       XPState `json:"xp" yaml:"xp"`
	DidApply bool    `json:"didApply" yaml:"didApply"`
}
