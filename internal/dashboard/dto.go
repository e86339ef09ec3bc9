package dashboard

import "time"

// EmployeeDashboard summarizes an employee's own equipment and requests.
type EmployeeDashboard struct {
	MyEquipment     int64            `json:"my_equipment"`
	MyRequests      int64            `json:"my_requests"`
	PendingRequests int64            `json:"pending_requests"`
	RecentRequests  []RequestSummary `json:"recent_requests"`
}

type RequestSummary struct {
	ID            int64     `json:"id"`
	Subject       string    `json:"subject"`
	EquipmentName string    `json:"equipment_name"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// TechnicianDashboard is the work-queue view: personal tasks, the team's
// unassigned backlog and today's throughput.
type TechnicianDashboard struct {
	MyTasks        int64      `json:"my_tasks"`
	TeamTasks      int64      `json:"team_tasks"`
	CompletedToday int64      `json:"completed_today"`
	OverdueCount   int64      `json:"overdue_count"`
	WorkQueue      []WorkItem `json:"work_queue"`
}

type WorkItem struct {
	ID            int64      `json:"id"`
	Subject       string     `json:"subject"`
	EquipmentName string     `json:"equipment_name"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	DueDate       *time.Time `json:"due_date,omitempty"`
}

// ManagerDashboard is the fleet-wide view shared by managers and admins.
type ManagerDashboard struct {
	TotalRequests       int64          `json:"total_requests"`
	OverdueRequests     int64          `json:"overdue_requests"`
	TeamPerformance     int            `json:"team_performance"`
	PreventiveScheduled int64          `json:"preventive_scheduled"`
	TeamStats           []TeamStat     `json:"team_stats"`
	RecentActivity      []ActivityItem `json:"recent_activity"`
}

type TeamStat struct {
	Name            string  `json:"name"`
	ActiveRequests  int64   `json:"active_requests"`
	TechnicianCount int64   `json:"technician_count"`
	Workload        float64 `json:"workload"`
}

type ActivityItem struct {
	ID        int64     `json:"id"`
	Subject   string    `json:"subject"`
	UserName  string    `json:"user" gorm:"column:user_name"`
	UpdatedAt time.Time `json:"updated_at"`
}
