package fc2ppvdb

import (
	"fc2ppvdb-scraper/lib/restyutil"
	"fc2ppvdb-scraper/lib/telemetry"
)

var tracer = telemetry.Tracer("fc2ppvdb.lib.scrapers.fc2ppvdb")

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput sets the sink that receives a transcript of
// every http exchange. It only affects clients created afterwards.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
