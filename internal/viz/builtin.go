package viz

import "github.com/ziadkadry99/beyond-scaling/internal/diagrams"

// Default returns the registry of built-in visualizations. Each call builds a
// fresh registry.
func Default() *Registry {
	return MustRegistry(
		Descriptor{
			TypeKey:     "brain",
			Title:       "Interactive Brain Model",
			Description: "Explore the regions of the brain involved in cognitive processes",
			Accent:      Accent{Gradient: "bg-gradient-to-r from-purple-600 to-blue-600", Border: "border-purple-100"},
			Widget: SceneWidget{
				Key:   "brain",
				Model: "sphere-noise",
				Noise: 0.15,
				Regions: []Region{
					{Name: "prefrontal", Function: "Planning and prediction", Position: [3]float64{0, 0.5, 1.5}, Color: "#8b5cf6"},
					{Name: "motor", Function: "Action and embodiment", Position: [3]float64{0, 1.2, 0.3}, Color: "#3b82f6"},
					{Name: "visual", Function: "Hierarchical perception", Position: [3]float64{0, 0.3, -1.5}, Color: "#10b981"},
					{Name: "temporal", Function: "Memory and language", Position: [3]float64{1.3, -0.2, 0.2}, Color: "#f59e0b"},
				},
			},
		},
		Descriptor{
			TypeKey:     "neural-network",
			Title:       "Neural Network Dynamics",
			Description: "Visualize how neural networks process information",
			Accent:      Accent{Gradient: "bg-gradient-to-r from-blue-600 to-cyan-600", Border: "border-blue-100"},
			Widget: CanvasWidget{
				Key:       "neural-network",
				Animation: "pulse-network",
				Params:    map[string]any{"layers": []int{6, 10, 8, 4}, "pulse_speed": 0.02, "activation_rate": 0.05},
			},
		},
		Descriptor{
			TypeKey:     "timeline",
			Title:       "AI Development Timeline",
			Description: "Key milestones in the development of artificial intelligence",
			Accent:      Accent{Gradient: "bg-gradient-to-r from-indigo-600 to-purple-600", Border: "border-indigo-100"},
			Widget:      MermaidWidget{Key: "timeline", Source: aiTimeline.Source},
		},
		Descriptor{
			TypeKey:     "fep",
			Title:       "Free Energy Principle",
			Description: "Interactive visualization of the Free Energy Principle",
			Accent:      Accent{Gradient: "bg-gradient-to-r from-green-600 to-teal-600", Border: "border-green-100"},
			Widget: CanvasWidget{
				Key:       "fep",
				Animation: "prediction-error",
				Params:    map[string]any{"modes": []string{"perception", "action"}, "learning_rate": 0.1},
			},
		},
		Descriptor{
			TypeKey:     "consciousness",
			Title:       "Consciousness & Intelligence",
			Description: "Exploring the relationship between consciousness and intelligence",
			Accent:      Accent{Gradient: "bg-gradient-to-r from-pink-600 to-rose-600", Border: "border-pink-100"},
			Widget: ChartWidget{
				Key:  "consciousness",
				Tabs: []string{"systems"},
				Charts: map[string]Chart{
					"systems": {
						Type:   "scatter",
						Labels: []string{"Thermostat", "Insects", "Current LLMs", "Mammals", "Humans"},
						Datasets: []Dataset{
							{Label: "Intelligence", Data: []float64{5, 20, 70, 55, 90}, Color: "#db2777"},
							{Label: "Consciousness", Data: []float64{0, 25, 5, 70, 95}, Color: "#e11d48"},
						},
						XLabel: "Intelligence",
						YLabel: "Consciousness",
					},
				},
			},
		},
		Descriptor{
			TypeKey:     "prediction",
			Title:       "Prediction Mechanisms",
			Description: "Comparing prediction mechanisms in the brain and AI",
			Accent:      Accent{Gradient: "bg-gradient-to-r from-amber-600 to-orange-600", Border: "border-amber-100"},
			Widget: ChartWidget{
				Key:  "prediction",
				Tabs: []string{"comparison"},
				Charts: map[string]Chart{
					"comparison": {
						Type:   "radar",
						Labels: []string{"Active sampling", "Embodiment", "Hierarchy", "Precision weighting", "Scale"},
						Datasets: []Dataset{
							{Label: "Brain", Data: []float64{90, 95, 85, 80, 40}, Color: "#d97706"},
							{Label: "Current AI", Data: []float64{10, 5, 60, 30, 95}, Color: "#ea580c"},
						},
					},
				},
			},
		},
		Descriptor{
			TypeKey:     "scaling",
			Title:       "Scaling Limitations",
			Description: "Visualizing the limitations of the scaling paradigm",
			Accent:      Accent{Gradient: "bg-gradient-to-r from-red-600 to-rose-600", Border: "border-red-100"},
			Widget: ChartWidget{
				Key:  "scaling",
				Tabs: []string{"parameters", "abilities", "limitations"},
				Charts: map[string]Chart{
					"parameters": {
						Type:     "bar",
						Labels:   []string{"GPT-1", "GPT-2", "GPT-3", "PaLM", "GPT-4", "Theoretical Limit"},
						Datasets: []Dataset{{Label: "Parameters (log scale)", Data: []float64{1.17e8, 1.5e9, 1.75e11, 5.4e11, 1.76e12, 1e13}, Color: "#dc2626"}},
						LogScale: true,
					},
					"abilities": {
						Type:     "bar",
						Labels:   []string{"In-context Learning", "Instruction Following", "Code Generation", "Theoretical Limit"},
						Datasets: []Dataset{{Label: "Parameters Required for Emergence (log scale)", Data: []float64{1e10, 5e10, 1e11, 1e13}, Color: "#e11d48"}},
						LogScale: true,
					},
					"limitations": {
						Type:     "bar",
						Labels:   []string{"Computational Cost", "Energy Consumption", "Data Exhaustion", "Physical Hardware Limits"},
						Datasets: []Dataset{{Label: "Parameter Threshold Where Limitation Becomes Significant (log scale)", Data: []float64{1e11, 5e11, 1e12, 1e13}, Color: "#f97316"}},
						LogScale: true,
					},
				},
			},
		},
		Descriptor{
			TypeKey:     "conceptmap",
			Title:       "AI Concept Map",
			Description: "Interactive map of key AI concepts and their relationships",
			Accent:      Accent{Gradient: "bg-gradient-to-r from-sky-600 to-blue-600", Border: "border-sky-100"},
			Widget:      MermaidWidget{Key: "conceptmap", Source: conceptMap.Flowchart},
		},
		Descriptor{
			TypeKey:     "free-energy-viz",
			Title:       "Free Energy Visualizer",
			Description: "Interactive visualization of free energy principles",
			Accent:      Accent{Gradient: "bg-gradient-to-r from-emerald-600 to-green-600", Border: "border-emerald-100"},
			Widget: CanvasWidget{
				Key:       "free-energy-viz",
				Animation: "agent-environment",
				Params:    map[string]any{"modes": []string{"perception", "action"}, "goals": 3, "prediction_lines": 12},
			},
		},
		Descriptor{
			TypeKey:     "mermaid",
			Title:       "AI and Neuroscience Relationships",
			Description: "Interactive chart showing relationships between AI approaches and neuroscience principles",
			Accent:      Accent{Gradient: "bg-gradient-to-r from-blue-600 to-indigo-600", Border: "border-blue-100"},
			Widget:      MermaidWidget{Key: "mermaid", Source: approachesGraph.Flowchart},
		},
	)
}

var aiTimeline = diagrams.Timeline{
	Title: "AI Neuroscience Conceptual Timeline",
	Sections: []diagrams.TimelineSection{
		{Name: "Foundational Theories", Events: []diagrams.Event{
			{Period: "1940s-1950s", Title: "Neural Networks", Detail: "McCulloch & Pitts neurons"},
			{Period: "1980s-1990s", Title: "Connectionism", Detail: "PDP models, Hinton"},
			{Period: "2000s", Title: "Predictive Coding", Detail: "Rao & Ballard, Friston"},
			{Period: "2010s", Title: "Free Energy Principle", Detail: "Friston, Active Inference"},
		}},
		{Name: "AI Developments", Events: []diagrams.Event{
			{Period: "1997", Title: "Deep Blue Beats Kasparov", Detail: "Symbolic AI success"},
			{Period: "2012", Title: "AlexNet", Detail: "Deep learning revolution"},
			{Period: "2017", Title: "Attention Mechanisms", Detail: "Transformer architecture"},
			{Period: "2020", Title: "Large Language Models", Detail: "Emergent capabilities"},
		}},
		{Name: "Integrative Approaches", Events: []diagrams.Event{
			{Period: "2015", Title: "Deep Reinforcement Learning", Detail: "AlphaGo"},
			{Period: "2022", Title: "Foundation Models", Detail: "Scale-based emergence"},
		}},
	},
}

var conceptMap = diagrams.Graph{
	Nodes: []diagrams.Node{
		{ID: "AGI", Label: "Artificial General Intelligence"},
		{ID: "ScalingP", Label: "Scaling Paradigm", Group: "Scaling"},
		{ID: "ScalingL", Label: "Scaling Limitations", Group: "Scaling"},
		{ID: "EmerA", Label: "Emergent Abilities", Group: "Scaling"},
		{ID: "NeuroI", Label: "Neuroscience Insights", Group: "Neuroscience"},
		{ID: "FEP", Label: "Free Energy Principle", Group: "Neuroscience"},
		{ID: "ActInf", Label: "Active Inference", Group: "Neuroscience"},
		{ID: "Meta", Label: "Metastability", Group: "Neuroscience"},
		{ID: "ConsInt", Label: "Consciousness vs Intelligence", Group: "Consciousness"},
		{ID: "PredMech", Label: "Prediction Mechanisms", Group: "Consciousness"},
		{ID: "PracRec", Label: "Practical Recommendations"},
	},
	Edges: []diagrams.Edge{
		{From: "AGI", To: "ScalingP"},
		{From: "AGI", To: "NeuroI"},
		{From: "ScalingP", To: "ScalingL"},
		{From: "ScalingL", To: "EmerA"},
		{From: "NeuroI", To: "FEP"},
		{From: "NeuroI", To: "Meta"},
		{From: "FEP", To: "ActInf"},
		{From: "NeuroI", To: "ConsInt"},
		{From: "ConsInt", To: "PredMech"},
		{From: "PredMech", To: "PracRec"},
		{From: "ScalingL", To: "PracRec", Label: "motivates"},
	},
}

var approachesGraph = diagrams.Graph{
	Direction: "LR",
	Nodes: []diagrams.Node{
		{ID: "AIDev", Label: "AI Development"},
		{ID: "Scaling", Label: "Current Scaling Approach"},
		{ID: "Neuro", Label: "Neuroscience-Informed Approach"},
		{ID: "Models", Label: "Larger Models"},
		{ID: "Data", Label: "More Data"},
		{ID: "Compute", Label: "More Compute"},
		{ID: "PP", Label: "Predictive Processing"},
		{ID: "FEP", Label: "Free Energy Principle"},
		{ID: "Hier", Label: "Hierarchical Processing"},
		{ID: "Limits", Label: "Limitations"},
		{ID: "Benefits", Label: "Benefits"},
		{ID: "Future", Label: "Future of AI"},
	},
	Edges: []diagrams.Edge{
		{From: "AIDev", To: "Scaling"},
		{From: "AIDev", To: "Neuro"},
		{From: "Scaling", To: "Models"},
		{From: "Scaling", To: "Data"},
		{From: "Scaling", To: "Compute"},
		{From: "Neuro", To: "PP"},
		{From: "Neuro", To: "FEP"},
		{From: "Neuro", To: "Hier"},
		{From: "Scaling", To: "Limits"},
		{From: "Neuro", To: "Benefits"},
		{From: "Limits", To: "Future"},
		{From: "Benefits", To: "Future"},
	},
}
