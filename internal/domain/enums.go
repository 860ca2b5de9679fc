package domain

// Gender - пол сотрудника
type Gender string

const (
	GenderMale        Gender = "男"
	GenderFemale      Gender = "女"
	GenderUndisclosed Gender = "未知"
)

// City - город оформления (зарплата, работа, договор, страховка)
type City string

const (
	CityDongguan  City = "东莞"
	CityHefei     City = "合肥"
	CitySuzhou    City = "苏州"
	CityGuangzhou City = "广州"
	CityChengdu   City = "成都"
	CityShenzhen  City = "深圳"
)

// Статусы трудоустройства
const (
	EmploymentRegular   = "正式"
	EmploymentProbation = "试用期"
)

// TaskStatus - состояние задачи
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskPaused     TaskStatus = "paused"
	TaskCancelled  TaskStatus = "cancelled"
	TaskDelayed    TaskStatus = "delayed"
	TaskCompleted  TaskStatus = "completed"
)

// TaskPriority - приоритет задачи, от 0 (обычный) до 3 (срочный)
type TaskPriority string

const (
	PriorityNormal TaskPriority = "0"
	PriorityMedium TaskPriority = "1"
	PriorityHigh   TaskPriority = "2"
	PriorityUrgent TaskPriority = "3"
)
