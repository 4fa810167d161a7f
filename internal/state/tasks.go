package state

import (
	"time"

	"github.com/noahlilabs/team-claude/internal/core/ident"
	"github.com/noahlilabs/team-claude/internal/models"
)

// AddTask creates a task in the given branch bucket and returns its ID.
// The ID is unique across the whole document: it combines the creation
// time with a random suffix rather than the bucket length, so interleaved
// deletions cannot produce collisions. When assignedTo names a known
// agent, the task ID is appended to that agent's current task list.
func (s *Store) AddTask(branch, description, assignedTo, priority string, requiredCapabilities []string) (string, error) {
	var taskID string
	err := s.run(func(doc *models.Document) error {
		now := time.Now()
		taskID = ident.New(ident.PrefixTask)
		task := &models.Task{
			ID:                   taskID,
			Description:          description,
			AssignedTo:           assignedTo,
			Status:               models.TaskStatusPending,
			Priority:             priority,
			RequiredCapabilities: append([]string(nil), requiredCapabilities...),
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		doc.Tasks[branch] = append(doc.Tasks[branch], task)
		assignToAgent(doc, assignedTo, taskID)
		return nil
	})
	if err != nil {
		return "", err
	}
	return taskID, nil
}

// CreateSubtask creates a task linked under an existing parent, stored in
// the parent's branch bucket. Returns "" (and no document mutation) when
// the parent is not found anywhere in the document.
func (s *Store) CreateSubtask(parentID, description, assignedTo string, requiredCapabilities []string) (string, error) {
	var subtaskID string
	err := s.run(func(doc *models.Document) error {
		parent, branch := doc.FindTask(parentID)
		if parent == nil {
			s.log.Warn("parent task not found", "parent", parentID)
			return nil
		}
		now := time.Now()
		subtaskID = ident.New(ident.PrefixSubtask)
		subtask := &models.Task{
			ID:                   subtaskID,
			ParentID:             parentID,
			Description:          description,
			AssignedTo:           assignedTo,
			Status:               models.TaskStatusPending,
			Priority:             models.TaskPriorityMedium,
			RequiredCapabilities: append([]string(nil), requiredCapabilities...),
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		doc.Tasks[branch] = append(doc.Tasks[branch], subtask)
		parent.Subtasks = append(parent.Subtasks, subtaskID)
		assignToAgent(doc, assignedTo, subtaskID)
		return nil
	})
	if err != nil {
		return "", err
	}
	return subtaskID, nil
}

// UpdateTaskStatus sets a task's status, optionally scoped to one branch.
// A non-empty message appends a record to the task's status history.
// Transitioning to completed credits the assignee exactly once: the
// completed counter increments and the task leaves the agent's current
// list only when the task was not already completed.
func (s *Store) UpdateTaskStatus(taskID, newStatus, branch, message string) (bool, error) {
	updated := false
	err := s.run(func(doc *models.Document) error {
		buckets := []string{branch}
		if _, ok := doc.Tasks[branch]; branch == "" || !ok {
			buckets = sortedKeys(doc.Tasks)
		}

		for _, b := range buckets {
			for _, task := range doc.Tasks[b] {
				if task.ID != taskID {
					continue
				}
				wasCompleted := task.Status == models.TaskStatusCompleted
				task.Status = newStatus
				task.UpdatedAt = time.Now()
				if message != "" {
					task.StatusHistory = append(task.StatusHistory, &models.StatusUpdate{
						Status:    newStatus,
						Message:   message,
						Timestamp: time.Now(),
					})
				}
				if newStatus == models.TaskStatusCompleted && !wasCompleted && task.AssignedTo != "" {
					if agent, ok := doc.Agents[task.AssignedTo]; ok {
						agent.TasksCompleted++
						agent.TasksCurrent = remove(agent.TasksCurrent, taskID)
					}
				}
				updated = true
				return nil
			}
		}
		s.log.Warn("task not found", "task", taskID)
		return nil
	})
	return updated, err
}

// TaskFilters narrows GetTasks results. Empty fields match everything;
// set fields combine with AND semantics.
type TaskFilters struct {
	Agent    string
	Branch   string
	Status   string
	ParentID string
}

// GetTasks returns detached copies of matching tasks, each annotated with
// the branch bucket holding it.
func (s *Store) GetTasks(filters TaskFilters) ([]*models.Task, error) {
	var result []*models.Task
	err := s.run(func(doc *models.Document) error {
		branches := sortedKeys(doc.Tasks)
		if filters.Branch != "" {
			if _, ok := doc.Tasks[filters.Branch]; !ok {
				return nil
			}
			branches = []string{filters.Branch}
		}
		for _, b := range branches {
			for _, task := range doc.Tasks[b] {
				if filters.Status != "" && task.Status != filters.Status {
					continue
				}
				if filters.Agent != "" && task.AssignedTo != filters.Agent {
					continue
				}
				if filters.ParentID != "" && task.ParentID != filters.ParentID {
					continue
				}
				copy := task.Clone()
				copy.Branch = b
				result = append(result, copy)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteTask removes a task, optionally scoped to one branch, and also
// removes its direct children everywhere. The cascade is one level only;
// deeper descendants keep their (now dangling) parent references.
func (s *Store) DeleteTask(taskID, branch string) (bool, error) {
	deleted := false
	err := s.run(func(doc *models.Document) error {
		buckets := sortedKeys(doc.Tasks)
		if branch != "" {
			if _, ok := doc.Tasks[branch]; !ok {
				return nil
			}
			buckets = []string{branch}
		}
		for _, b := range buckets {
			kept := doc.Tasks[b][:0]
			for _, task := range doc.Tasks[b] {
				if task.ID == taskID {
					deleted = true
					continue
				}
				kept = append(kept, task)
			}
			doc.Tasks[b] = kept
		}
		if !deleted {
			return nil
		}

		// Direct children are removed regardless of branch scope.
		for _, b := range sortedKeys(doc.Tasks) {
			kept := doc.Tasks[b][:0]
			for _, task := range doc.Tasks[b] {
				if task.ParentID == taskID {
					continue
				}
				kept = append(kept, task)
			}
			doc.Tasks[b] = kept
		}
		return nil
	})
	return deleted, err
}

// DeleteAllTasks clears one branch bucket, or every bucket when branch is
// empty. Returns true when anything was removed.
func (s *Store) DeleteAllTasks(branch string) (bool, error) {
	deleted := false
	err := s.run(func(doc *models.Document) error {
		if branch != "" {
			if len(doc.Tasks[branch]) > 0 {
				doc.Tasks[branch] = []*models.Task{}
				deleted = true
			}
			return nil
		}
		for b, tasks := range doc.Tasks {
			if len(tasks) > 0 {
				doc.Tasks[b] = []*models.Task{}
				deleted = true
			}
		}
		return nil
	})
	return deleted, err
}

// assignToAgent appends the task to the agent's current list when the
// assignee names a registered agent. Unknown assignees are kept on the
// task as weak references without agent bookkeeping.
func assignToAgent(doc *models.Document, agentID, taskID string) {
	if agentID == "" {
		return
	}
	if agent, ok := doc.Agents[agentID]; ok {
		agent.TasksCurrent = append(agent.TasksCurrent, taskID)
	}
}

// remove filters one value out of a string slice.
func remove(s []string, v string) []string {
	kept := s[:0]
	for _, x := range s {
		if x != v {
			kept = append(kept, x)
		}
	}
	return kept
}
