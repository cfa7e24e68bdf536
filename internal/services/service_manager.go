package services

type serviceManager struct {
	gradebook  GradebookService
	evaluation EvaluationService
	export     ExportService
}

func NewServiceManager(gradebook GradebookService, evaluation EvaluationService, export ExportService) ServiceManager {
	return &serviceManager{
		gradebook:  gradebook,
		evaluation: evaluation,
		export:     export,
	}
}

func (m *serviceManager) Gradebook() GradebookService {
	return m.gradebook
}

func (m *serviceManager) Evaluation() EvaluationService {
	return m.evaluation
}

func (m *serviceManager) Export() ExportService {
	return m.export
}
