package user

import "github.com/m04kA/SMC-ClinicBookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
