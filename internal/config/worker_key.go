package config

type WorkerKeyStruct struct {
	SyncAnswersQueue string
	SyncResultsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	SyncAnswersQueue: "sync_answers_queue",
	SyncResultsQueue: "sync_results_queue",
}
