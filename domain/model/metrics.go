package model

// ConfusionMatrix is the 2x2 outcome table at the 0.5 decision threshold.
type ConfusionMatrix struct {
	TruePositives  int `json:"true_positives"`
	TrueNegatives  int `json:"true_negatives"`
	FalsePositives int `json:"false_positives"`
	FalseNegatives int `json:"false_negatives"`
}

// Total returns the held-out sample count behind the matrix.
func (m ConfusionMatrix) Total() int {
	return m.TruePositives + m.TrueNegatives + m.FalsePositives + m.FalseNegatives
}

// ValidationMetrics holds held-out split metrics at the 0.5 threshold.
// Precision, recall, and F1 are zero (not NaN) when their denominators are
// empty, so downstream consumers never see non-finite values.
type ValidationMetrics struct {
	Accuracy  float64         `json:"accuracy"`
	Precision float64         `json:"precision"`
	Recall    float64         `json:"recall"`
	F1        float64         `json:"f1"`
	Confusion ConfusionMatrix `json:"confusion_matrix"`
	TestSize  int             `json:"test_size"`
}

// ComputeMetrics derives all validation metrics from a confusion matrix.
func ComputeMetrics(cm ConfusionMatrix) ValidationMetrics {
	m := ValidationMetrics{Confusion: cm, TestSize: cm.Total()}
	if total := cm.Total(); total > 0 {
		m.Accuracy = float64(cm.TruePositives+cm.TrueNegatives) / float64(total)
	}
	if predicted := cm.TruePositives + cm.FalsePositives; predicted > 0 {
		m.Precision = float64(cm.TruePositives) / float64(predicted)
	}
	if actual := cm.TruePositives + cm.FalseNegatives; actual > 0 {
		m.Recall = float64(cm.TruePositives) / float64(actual)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}
