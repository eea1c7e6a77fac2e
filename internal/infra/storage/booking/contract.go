package booking

import "github.com/m04kA/SMC-ReservationService/pkg/txmanager"

// DBExecutor переиспользуем интерфейс из txmanager для работы с БД
type DBExecutor = txmanager.DBExecutor
