package service

import "github.com/turtacn/gdmrisk/internal/domain/models"

// Vector is a row of the eight clinical features in canonical order.
type Vector = [models.FeatureCount]float64

//go:generate mockery --name Scaler --output mocks --outpkg mocks --filename scaler_mock.go --structname MockScaler
// Scaler maps an imputed feature row into the classifier's native space.
// Scaler 将插补后的特征行映射到分类器的原生空间。
type Scaler interface {
	// Transform returns the normalized row. The input is never modified.
	// Transform 返回归一化后的行，不修改输入。
	Transform(x Vector) Vector
}

//go:generate mockery --name Classifier --output mocks --outpkg mocks --filename classifier_mock.go --structname MockClassifier
// Classifier is a pre-trained binary classifier over normalized rows.
// Classifier 是基于归一化特征行的预训练二分类器。
type Classifier interface {
	// PredictProba returns [P(class0), P(class1)].
	// PredictProba 返回 [P(类别0), P(类别1)]。
	PredictProba(x Vector) [2]float64

	// Predict returns the class label.
	// Predict 返回类别标签。
	Predict(x Vector) int

	// DecisionFunction returns the raw, pre-probability model output.
	// DecisionFunction 返回模型的原始输出（概率变换之前）。
	DecisionFunction(x Vector) float64
}

//go:generate mockery --name Explainer --output mocks --outpkg mocks --filename explainer_mock.go --structname MockExplainer
// Explainer attributes a classifier output to individual features.
// Explainer 将分类器输出归因到各个特征。
type Explainer interface {
	// Attribute returns the baseline value and one contribution per feature,
	// in the same order as x.
	// Attribute 返回基线值以及与 x 同序的每个特征贡献。
	Attribute(x Vector) (base float64, contributions Vector)
}
