package models

// CasoEstado - состояние кейса и записи сопровождения
type CasoEstado string

const (
	EstadoIniciado   CasoEstado = "Iniciado"
	EstadoEnProceso  CasoEstado = "En proceso"
	EstadoFinalizado CasoEstado = "Finalizado"
)

// IsValid проверяет, что значение входит в перечисление
func (e CasoEstado) IsValid() bool {
	switch e {
	case EstadoIniciado, EstadoEnProceso, EstadoFinalizado:
		return true
	default:
		return false
	}
}
