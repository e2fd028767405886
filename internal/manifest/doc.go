// Package manifest describes a type domain in YAML and materializes it.
//
// A manifest lists the modules of a domain and the types each module
// declares, with their members. Type references are written in IL syntax
// and parsed with ParseType:
//
//	version: "1"
//	name: sample
//	platform: x64
//	modules:
//	  - name: mscorlib
//	    core_library: true
//	  - name: zoo
//	    types:
//	      - namespace: Zoo
//	        name: Animal
//	        kind: class
//	        interfaces: ["class [mscorlib]System.IComparable`1<class Zoo.Animal>"]
//	        fields:
//	          - {name: Legs, type: int32}
//	        methods:
//	          - name: Speak
//	            return: void
//	            parameters: [{name: loud, type: bool}]
//
// A module marked core_library receives the System surface of
// metadata.DefineCoreLibrary before its own types are declared.
package manifest
