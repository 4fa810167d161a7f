package state

import (
	"testing"

	"github.com/noahlilabs/team-claude/internal/models"
)

func mustAddTask(t *testing.T, s *Store, branch, description, assignedTo string) string {
	t.Helper()
	id, err := s.AddTask(branch, description, assignedTo, models.TaskPriorityMedium, nil)
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	return id
}

func TestAddTask(t *testing.T) {
	s := newTestStore(t)
	mustRegister(t, s, "a1", "backend", []string{"python"})

	id, err := s.AddTask("main", "build endpoint", "a1", models.TaskPriorityHigh, []string{"python"})
	if err != nil {
		t.Fatal(err)
	}

	tasks, err := s.GetTasks(TaskFilters{Branch: "main"})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	task := tasks[0]
	if task.ID != id || task.Description != "build endpoint" || task.Priority != models.TaskPriorityHigh {
		t.Errorf("task = %+v", task)
	}
	if task.Status != models.TaskStatusPending {
		t.Errorf("status = %q, want pending", task.Status)
	}
	if task.Branch != "main" {
		t.Errorf("branch annotation = %q, want main", task.Branch)
	}

	// Assignment side effect on the agent.
	agents, err := s.GetAgents(AgentFilters{})
	if err != nil {
		t.Fatal(err)
	}
	if len(agents[0].TasksCurrent) != 1 || agents[0].TasksCurrent[0] != id {
		t.Errorf("tasks_current = %v, want [%s]", agents[0].TasksCurrent, id)
	}
}

func TestAddTaskIDsUniqueAcrossDeletions(t *testing.T) {
	s := newTestStore(t)

	// Bucket length returns to the same value between adds; IDs must
	// stay pairwise distinct regardless.
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		id := mustAddTask(t, s, "main", "churn", "")
		if seen[id] {
			t.Fatalf("duplicate task ID %q", id)
		}
		seen[id] = true
		if ok, err := s.DeleteTask(id, "main"); err != nil || !ok {
			t.Fatalf("DeleteTask(%s): ok=%v err=%v", id, ok, err)
		}
	}
}

func TestBranchIsolation(t *testing.T) {
	s := newTestStore(t)
	mustAddTask(t, s, "feature-a", "task in a", "")

	tasks, err := s.GetTasks(TaskFilters{Branch: "feature-b"})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Errorf("branch feature-b sees %d tasks from feature-a", len(tasks))
	}
}

func TestCreateSubtask(t *testing.T) {
	s := newTestStore(t)
	mustRegister(t, s, "a2", "frontend", []string{"css"})
	parentID := mustAddTask(t, s, "main", "parent", "")

	subID, err := s.CreateSubtask(parentID, "child work", "a2", []string{"css"})
	if err != nil {
		t.Fatal(err)
	}
	if subID == "" {
		t.Fatal("CreateSubtask() returned empty ID for existing parent")
	}

	// Subtask lands in the parent's branch bucket.
	tasks, err := s.GetTasks(TaskFilters{Branch: "main", ParentID: parentID})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].ID != subID {
		t.Fatalf("subtask query = %v", tasks)
	}

	// Parent tracks the child.
	parents, err := s.GetTasks(TaskFilters{Branch: "main"})
	if err != nil {
		t.Fatal(err)
	}
	for _, task := range parents {
		if task.ID == parentID {
			if len(task.Subtasks) != 1 || task.Subtasks[0] != subID {
				t.Errorf("parent subtasks = %v, want [%s]", task.Subtasks, subID)
			}
		}
	}

	// Assignee bookkeeping.
	agents, err := s.GetAgents(AgentFilters{})
	if err != nil {
		t.Fatal(err)
	}
	if len(agents[0].TasksCurrent) != 1 || agents[0].TasksCurrent[0] != subID {
		t.Errorf("tasks_current = %v, want [%s]", agents[0].TasksCurrent, subID)
	}
}

func TestCreateSubtaskUnknownParent(t *testing.T) {
	s := newTestStore(t)
	mustAddTask(t, s, "main", "unrelated", "")
	before := readFileBytes(t, s.Path())

	subID, err := s.CreateSubtask("task_0_missing", "orphan", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if subID != "" {
		t.Errorf("CreateSubtask() = %q, want empty for missing parent", subID)
	}

	after := readFileBytes(t, s.Path())
	if string(before) != string(after) {
		t.Error("document mutated despite missing parent")
	}
}

func TestUpdateTaskStatusHistory(t *testing.T) {
	s := newTestStore(t)
	id := mustAddTask(t, s, "main", "status test", "")

	ok, err := s.UpdateTaskStatus(id, models.TaskStatusInProgress, "", "working on it")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("UpdateTaskStatus() = false")
	}

	tasks, err := s.GetTasks(TaskFilters{Branch: "main"})
	if err != nil {
		t.Fatal(err)
	}
	task := tasks[0]
	if task.Status != models.TaskStatusInProgress {
		t.Errorf("status = %q", task.Status)
	}
	if len(task.StatusHistory) != 1 || task.StatusHistory[0].Message != "working on it" {
		t.Errorf("history = %+v", task.StatusHistory)
	}

	// No message, no history entry.
	if _, err := s.UpdateTaskStatus(id, models.TaskStatusBlocked, "", ""); err != nil {
		t.Fatal(err)
	}
	tasks, _ = s.GetTasks(TaskFilters{Branch: "main"})
	if len(tasks[0].StatusHistory) != 1 {
		t.Errorf("history grew without a message: %+v", tasks[0].StatusHistory)
	}
}

func TestUpdateTaskStatusUnknownTask(t *testing.T) {
	s := newTestStore(t)

	ok, err := s.UpdateTaskStatus("task_0_missing", models.TaskStatusCompleted, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("UpdateTaskStatus() = true for unknown task")
	}
}

func TestCompletionCreditsAssigneeOnce(t *testing.T) {
	s := newTestStore(t)
	mustRegister(t, s, "a1", "backend", []string{"python", "api"})

	// The end-to-end scheduling scenario: find, assign, complete.
	best, err := s.FindBestAgentForTask([]string{"python"})
	if err != nil {
		t.Fatal(err)
	}
	if best != "a1" {
		t.Fatalf("best = %q, want a1", best)
	}

	id, err := s.AddTask("main", "build endpoint", best, models.TaskPriorityHigh, []string{"python"})
	if err != nil {
		t.Fatal(err)
	}

	if ok, err := s.UpdateTaskStatus(id, models.TaskStatusCompleted, "", ""); err != nil || !ok {
		t.Fatalf("completion: ok=%v err=%v", ok, err)
	}

	agents, err := s.GetAgents(AgentFilters{})
	if err != nil {
		t.Fatal(err)
	}
	a1 := agents[0]
	if a1.TasksCompleted != 1 {
		t.Errorf("tasks_completed = %d, want 1", a1.TasksCompleted)
	}
	if len(a1.TasksCurrent) != 0 {
		t.Errorf("tasks_current = %v, want empty", a1.TasksCurrent)
	}

	// Completing an already-completed task must not double-count.
	if _, err := s.UpdateTaskStatus(id, models.TaskStatusCompleted, "", ""); err != nil {
		t.Fatal(err)
	}
	agents, _ = s.GetAgents(AgentFilters{})
	if agents[0].TasksCompleted != 1 {
		t.Errorf("tasks_completed = %d after repeat completion, want 1", agents[0].TasksCompleted)
	}
}

func TestGetTasksFilters(t *testing.T) {
	s := newTestStore(t)
	mustRegister(t, s, "a1", "backend", nil)
	id1 := mustAddTask(t, s, "main", "one", "a1")
	mustAddTask(t, s, "feature", "two", "")
	if _, err := s.UpdateTaskStatus(id1, models.TaskStatusInProgress, "", ""); err != nil {
		t.Fatal(err)
	}

	byAgent, err := s.GetTasks(TaskFilters{Agent: "a1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byAgent) != 1 || byAgent[0].ID != id1 {
		t.Errorf("by agent = %v", byAgent)
	}

	byStatus, err := s.GetTasks(TaskFilters{Status: models.TaskStatusPending})
	if err != nil {
		t.Fatal(err)
	}
	if len(byStatus) != 1 || byStatus[0].Description != "two" {
		t.Errorf("by status = %v", byStatus)
	}

	combined, err := s.GetTasks(TaskFilters{Agent: "a1", Status: models.TaskStatusPending})
	if err != nil {
		t.Fatal(err)
	}
	if len(combined) != 0 {
		t.Errorf("AND filters returned %v", combined)
	}
}

func TestDeleteTaskCascadesOneLevel(t *testing.T) {
	s := newTestStore(t)
	parent := mustAddTask(t, s, "main", "parent", "")
	child, err := s.CreateSubtask(parent, "child", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	grandchild, err := s.CreateSubtask(child, "grandchild", "", nil)
	if err != nil {
		t.Fatal(err)
	}

	ok, err := s.DeleteTask(parent, "")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("DeleteTask() = false")
	}

	tasks, err := s.GetTasks(TaskFilters{})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].ID != grandchild {
		t.Errorf("remaining tasks = %v, want only the grandchild", tasks)
	}
}

func TestDeleteTaskBranchScoped(t *testing.T) {
	s := newTestStore(t)
	idA := mustAddTask(t, s, "branch-a", "in a", "")

	// Scoped to the wrong branch: nothing deleted.
	ok, err := s.DeleteTask(idA, "branch-b")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("DeleteTask() = true for wrong branch scope")
	}

	ok, err = s.DeleteTask(idA, "branch-a")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("DeleteTask() = false for correct branch scope")
	}
}

func TestDeleteAllTasks(t *testing.T) {
	s := newTestStore(t)
	mustAddTask(t, s, "main", "one", "")
	mustAddTask(t, s, "feature", "two", "")

	ok, err := s.DeleteAllTasks("main")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("DeleteAllTasks(main) = false")
	}
	remaining, _ := s.GetTasks(TaskFilters{})
	if len(remaining) != 1 || remaining[0].Branch != "feature" {
		t.Errorf("remaining = %v", remaining)
	}

	ok, err = s.DeleteAllTasks("")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("DeleteAllTasks() = false with tasks left")
	}

	ok, err = s.DeleteAllTasks("")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("DeleteAllTasks() = true on empty store")
	}
}
