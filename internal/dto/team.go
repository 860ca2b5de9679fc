package dto

// TeamRequest - запрос на создание команды
type TeamRequest struct {
	Name               string  `json:"name" validate:"required,min=1,max=100"`
	ProjectDirectorID  *int64  `json:"project_director_id" validate:"omitempty,min=1"`
	AlgorithmLeaderID  *int64  `json:"algorithm_leader_id" validate:"omitempty,min=1"`
	VisionLeaderID     *int64  `json:"vision_leader_id" validate:"omitempty,min=1"`
	MechanicLeaderID   *int64  `json:"mechanic_leader_id" validate:"omitempty,min=1"`
	EELeaderID         *int64  `json:"ee_leader_id" validate:"omitempty,min=1"`
	ProjectManagerID   *int64  `json:"project_manager_id" validate:"omitempty,min=1"`
	BusinessManagerID  *int64  `json:"business_manager_id" validate:"omitempty,min=1"`
	AlgorithmMembers   []int64 `json:"algorithm_members" validate:"omitempty,dive,min=1"`
	VisionMembers      []int64 `json:"vision_members" validate:"omitempty,dive,min=1"`
	MechanicMembers    []int64 `json:"mechanic_members" validate:"omitempty,dive,min=1"`
	EEMembers          []int64 `json:"ee_members" validate:"omitempty,dive,min=1"`
	MaintenanceMembers []int64 `json:"maintenance_members" validate:"omitempty,dive,min=1"`
}

// UpdateTeamRequest - частичное обновление; отсутствующий список участников не меняется
type UpdateTeamRequest struct {
	Name               *string `json:"name" validate:"omitempty,min=1,max=100"`
	ProjectDirectorID  *int64  `json:"project_director_id" validate:"omitempty,min=1"`
	AlgorithmLeaderID  *int64  `json:"algorithm_leader_id" validate:"omitempty,min=1"`
	VisionLeaderID     *int64  `json:"vision_leader_id" validate:"omitempty,min=1"`
	MechanicLeaderID   *int64  `json:"mechanic_leader_id" validate:"omitempty,min=1"`
	EELeaderID         *int64  `json:"ee_leader_id" validate:"omitempty,min=1"`
	ProjectManagerID   *int64  `json:"project_manager_id" validate:"omitempty,min=1"`
	BusinessManagerID  *int64  `json:"business_manager_id" validate:"omitempty,min=1"`
	AlgorithmMembers   []int64 `json:"algorithm_members" validate:"omitempty,dive,min=1"`
	VisionMembers      []int64 `json:"vision_members" validate:"omitempty,dive,min=1"`
	MechanicMembers    []int64 `json:"mechanic_members" validate:"omitempty,dive,min=1"`
	EEMembers          []int64 `json:"ee_members" validate:"omitempty,dive,min=1"`
	MaintenanceMembers []int64 `json:"maintenance_members" validate:"omitempty,dive,min=1"`
}

// TeamResponse - команда в плоском виде
type TeamResponse struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	ProjectDirectorID  *int64  `json:"project_director_id"`
	AlgorithmLeaderID  *int64  `json:"algorithm_leader_id"`
	VisionLeaderID     *int64  `json:"vision_leader_id"`
	MechanicLeaderID   *int64  `json:"mechanic_leader_id"`
	EELeaderID         *int64  `json:"ee_leader_id"`
	ProjectManagerID   *int64  `json:"project_manager_id"`
	BusinessManagerID  *int64  `json:"business_manager_id"`
	AlgorithmMembers   []int64 `json:"algorithm_members"`
	VisionMembers      []int64 `json:"vision_members"`
	MechanicMembers    []int64 `json:"mechanic_members"`
	EEMembers          []int64 `json:"ee_members"`
	MaintenanceMembers []int64 `json:"maintenance_members"`
}

// TeamNode - узел дерева команды для отображения оргструктуры
type TeamNode struct {
	Key      string       `json:"key"`
	Type     string       `json:"type"`
	Data     TeamNodeData `json:"data"`
	Children []TeamNode   `json:"children"`
}

type TeamNodeData struct {
	Image string `json:"image"`
	Name  string `json:"name"`
	Title string `json:"title"`
}
