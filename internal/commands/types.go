package commands

// Command names.
const (
	Greet              = "greet"
	PerformCalculation = "perform_calculation"
	GetSystemInfo      = "get_system_info"
	AsyncTask          = "async_task"
	StartProgressTask  = "start_progress_task"
	CalculatePrimes    = "calculate_primes_rust"
	CalculatePi        = "calculate_pi_monte_carlo"
)

// Operation is an arithmetic operator of perform_calculation.
type Operation string

const (
	Add      Operation = "add"
	Subtract Operation = "subtract"
	Multiply Operation = "multiply"
	Divide   Operation = "divide"
)

// GreetArgs are the arguments of greet.
type GreetArgs struct {
	Name string `json:"name"`
}

// CalculationArgs are the arguments of perform_calculation.
type CalculationArgs struct {
	A         int32     `json:"a"`
	B         int32     `json:"b"`
	Operation Operation `json:"operation"`
}

// AsyncTaskArgs are the arguments of async_task. Duration is in seconds.
type AsyncTaskArgs struct {
	Duration uint64 `json:"duration"`
}

// PrimesArgs are the arguments of calculate_primes_rust.
type PrimesArgs struct {
	Limit uint32 `json:"limit"`
}

// PiArgs are the arguments of calculate_pi_monte_carlo.
type PiArgs struct {
	Iterations uint64 `json:"iterations"`
}

// SystemInfo is the result of get_system_info. Timestamp is in Unix seconds.
type SystemInfo struct {
	OS         string  `json:"os"`
	Arch       string  `json:"arch"`
	Hostname   string  `json:"hostname"`
	Timestamp  uint64  `json:"timestamp"`
	NumCPU     int     `json:"num_cpu"`
	CPUPercent float64 `json:"cpu_percent"`
	MemPercent float64 `json:"mem_percent"`
}
