package ports

// HealthGate — здоровье процесса на основе голосов.
// Реализация должна допускать конкурентные вызовы из нескольких консьюмеров.
type HealthGate interface {
	IsHealthy() bool
	AddUnhealthyVote()
}

// HealthProbe — то, что нужно HTTP-пробам оркестратора.
type HealthProbe interface {
	IsHealthy() bool
	IsReady() bool
}
