package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los propagan sin modificar (sin reintentos silenciosos);
// el handler HTTP los traduce a códigos de estado.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// ErrInsufficientStock: el débito solicitado excede el remanente de los
	// lotes y la política de stock negativo no lo permite.
	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrOverReceipt: la recepción excede la cantidad ordenada del ítem.
	ErrOverReceipt = errors.New("recepción excede la cantidad ordenada")

	// ErrReversalMismatch: el registro de consumo no existe, no tiene
	// asignaciones de lote almacenadas, o ya fue revertido.
	ErrReversalMismatch = errors.New("reversión inconsistente con el consumo original")

	// ErrConsistencyDrift: el agregado current_stock no coincide con la suma
	// de remanentes de lotes. Es un bug, no un error de usuario: se reporta
	// al operador y nunca se corrige en silencio.
	ErrConsistencyDrift = errors.New("desviación entre agregado de stock y lotes")
)
