package dto

// EstadisticasPlataforma panel del SUPER_ADMIN.
type EstadisticasPlataforma struct {
	TotalUsuarios          int `json:"total_usuarios"`
	TotalClientes          int `json:"total_clientes"`
	LavaderosPendientes    int `json:"lavaderos_pendientes"`
	LavaderosActivos       int `json:"lavaderos_activos"`
	LavaderosVencidos      int `json:"lavaderos_vencidos"`
	ComprobantesPendientes int `json:"comprobantes_pendientes"`
}

// EstadisticasLavadero panel del ADMIN sobre su propio tenant.
type EstadisticasLavadero struct {
	Estado            string `json:"estado"`
	DiasRestantes     *int   `json:"dias_restantes,omitempty"`
	TotalComprobantes int    `json:"total_comprobantes"`
}

// EstadisticasCliente panel del CLIENTE.
type EstadisticasCliente struct {
	LavaderosOperativos int `json:"lavaderos_operativos"`
}
