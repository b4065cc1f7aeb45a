package providers

import "time"

// shutdownTimeout bounds how long any single component may take to shut down.
const shutdownTimeout = 10 * time.Second
