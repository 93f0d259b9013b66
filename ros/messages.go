// Package ros defines the shapes of ROS messages as they appear once a bag
// recording has been extracted to JSON.
package ros

// OdometryMessage mirrors a nav_msgs/Odometry record. Orientation components
// are stored x, y, z, w as they are on the wire.
type OdometryMessage struct {
	Meta struct {
		Secs  int
		Nsecs int
	}
	Data struct {
		Header struct {
			Seq   int
			Stamp struct {
				Secs  int
				Nsecs int
			}
			FrameId string `json:"frame_id"`
		}
		ChildFrameId string `json:"child_frame_id"`
		Pose         struct {
			Pose struct {
				Position struct {
					X float64
					Y float64
					Z float64
				}
				Orientation struct {
					X float64
					Y float64
					Z float64
					W float64
				}
			}
			Covariance [36]float64
		}
		Twist struct {
			Twist struct {
				Linear struct {
					X float64
					Y float64
					Z float64
				}
				Angular struct {
					X float64
					Y float64
					Z float64
				}
			}
			Covariance [36]float64
		}
	}
}
