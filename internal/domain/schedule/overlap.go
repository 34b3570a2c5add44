package schedule

import "time"

// Overlaps compara os intervalos bufferizados [start, start+dur+buffer).
// O buffer só é somado DEPOIS do fim — nunca antes do início. Dois
// atendimentos encostados com exatamente um buffer de folga não conflitam.
func Overlaps(
	aStart time.Time,
	aDuration time.Duration,
	bStart time.Time,
	bDuration time.Duration,
	buffer time.Duration,
) bool {

	aEnd := aStart.Add(aDuration).Add(buffer)
	bEnd := bStart.Add(bDuration).Add(buffer)

	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
