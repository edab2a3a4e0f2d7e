package agenda

import "boxbook/models"

// DefaultCapacity is the per-slot limit used when no day override sets one.
const DefaultCapacity = 4

// Weekday and Saturday class templates. Sundays and holidays are closed.
var weekdaySlots = []models.ClassSlot{
	{ID: "am1", Time: "06:30", Label: "Morning Box", Type: "am"},
	{ID: "am2", Time: "07:30", Label: "Morning Box", Type: "am"},
	{ID: "am3", Time: "08:30", Label: "Morning Box", Type: "am"},
	{ID: "am4", Time: "09:30", Label: "Morning Box", Type: "am"},
	{ID: "pm1", Time: "16:30", Label: "Afternoon Power", Type: "pm"},
	{ID: "pm2", Time: "17:30", Label: "Afternoon Power", Type: "pm"},
	{ID: "pm3", Time: "18:30", Label: "Afternoon Power", Type: "pm"},
	{ID: "pm4", Time: "19:30", Label: "Afternoon Power", Type: "pm"},
}

var saturdaySlots = []models.ClassSlot{
	{ID: "sat1", Time: "07:00", Label: "Weekend Warrior", Type: "am"},
	{ID: "sat2", Time: "08:00", Label: "Weekend Warrior", Type: "am"},
}

// defaultHolidays seeds the holiday collection on first boot (Colombian
// holidays 2025-2026, YYYY-MM-DD).
var defaultHolidays = []models.Holiday{
	{Date: "2025-01-01", Label: "Año Nuevo"},
	{Date: "2025-01-06", Label: "Reyes Magos"},
	{Date: "2025-03-19", Label: "San José"},
	{Date: "2025-04-17", Label: "Jueves Santo"},
	{Date: "2025-04-18", Label: "Viernes Santo"},
	{Date: "2025-05-01", Label: "Día del Trabajo"},
	{Date: "2025-06-02", Label: "Corpus Christi"},
	{Date: "2025-06-23", Label: "Sagrado Corazón"},
	{Date: "2025-06-29", Label: "San Pedro y San Pablo"},
	{Date: "2025-07-01", Label: "Conmemoración"},
	{Date: "2025-07-07", Label: "San Fermín"},
	{Date: "2025-08-07", Label: "Batalla de Boyacá"},
	{Date: "2025-08-15", Label: "Asunción"},
	{Date: "2025-11-03", Label: "Todos los Santos"},
	{Date: "2025-11-17", Label: "Independencia de Cartagena"},
	{Date: "2025-12-08", Label: "Inmaculada Concepción"},
	{Date: "2025-12-25", Label: "Navidad"},
	{Date: "2026-01-01", Label: "Año Nuevo"},
	{Date: "2026-01-12", Label: "Reyes Magos"},
	{Date: "2026-03-30", Label: "Jueves Santo"},
	{Date: "2026-03-31", Label: "Viernes Santo"},
	{Date: "2026-05-01", Label: "Día del Trabajo"},
	{Date: "2026-05-14", Label: "Corpus Christi"},
	{Date: "2026-06-01", Label: "Sagrado Corazón"},
	{Date: "2026-06-29", Label: "San Pedro y San Pablo"},
	{Date: "2026-07-01", Label: "Conmemoración"},
	{Date: "2026-07-06", Label: "San Fermín"},
	{Date: "2026-08-07", Label: "Batalla de Boyacá"},
	{Date: "2026-08-17", Label: "Asunción"},
	{Date: "2026-11-02", Label: "Todos los Santos"},
	{Date: "2026-11-16", Label: "Independencia de Cartagena"},
	{Date: "2026-12-08", Label: "Inmaculada Concepción"},
	{Date: "2026-12-25", Label: "Navidad"},
}
