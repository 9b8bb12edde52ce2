package game

// Task is a deferred, timed unit of work queued on a building.
type Task struct {
	Name      string
	Time      int // remaining ticks
	TotalTime int // captured on enqueue
	Icon      string
	Complete  func(p *Player)
}

// Progress returns how far the task has run, from 0 to 1.
func (t *Task) Progress() float64 {
	if t.TotalTime <= 0 {
		return 1
	}
	return float64(t.TotalTime-t.Time) / float64(t.TotalTime)
}

// TaskQueue is a FIFO of tasks where only the head counts down.
type TaskQueue struct {
	tasks []*Task
}

// Enqueue appends a task, capturing its total time for progress display.
// There is no capacity limit; callers gate on affordability beforehand.
func (q *TaskQueue) Enqueue(t Task) {
	t.TotalTime = t.Time
	q.tasks = append(q.tasks, &t)
}

// Advance decrements the head task by one tick. When it runs out it is removed
// and its callback fires with p, and Advance returns it. At most one task
// advances per call, so a completion never starts the next task early.
func (q *TaskQueue) Advance(p *Player) *Task {
	if len(q.tasks) == 0 {
		return nil
	}
	head := q.tasks[0]
	head.Time--
	if head.Time > 0 {
		return nil
	}
	q.tasks[0] = nil
	q.tasks = q.tasks[1:]
	if head.Complete != nil {
		head.Complete(p)
	}
	return head
}

// Head returns the current task, or nil.
func (q *TaskQueue) Head() *Task {
	if len(q.tasks) == 0 {
		return nil
	}
	return q.tasks[0]
}

func (q *TaskQueue) Len() int { return len(q.tasks) }

// Tasks returns a copy of the queue, head first.
func (q *TaskQueue) Tasks() []Task {
	out := make([]Task, len(q.tasks))
	for i, t := range q.tasks {
		out[i] = *t
	}
	return out
}

// Clear drops every pending task without firing callbacks.
func (q *TaskQueue) Clear() { q.tasks = nil }
